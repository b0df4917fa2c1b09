package coerce

import (
	"strings"

	"sheetgen/errs"
)

//go:generate go tool stringer -type=SemanticType -linecomment -output=semantictype_string.go

// SemanticType is the base scalar kind of a column.
type SemanticType int

const (
	_ SemanticType = iota // zero value is invalid

	TypeInt16   // int16
	TypeInt32   // int32
	TypeInt64   // int64
	TypeFloat32 // float32
	TypeFloat64 // float64
	TypeBool    // bool
	TypeString  // string
	TypeEnum    // enum
)

// vocabulary maps header type tokens to semantic types. The short names are
// aliases that older sheets still use.
var vocabulary = map[string]SemanticType{
	"int16":   TypeInt16,
	"int32":   TypeInt32,
	"int64":   TypeInt64,
	"float32": TypeFloat32,
	"float64": TypeFloat64,
	"bool":    TypeBool,
	"string":  TypeString,
	"enum":    TypeEnum,

	"short":  TypeInt16,
	"int":    TypeInt32,
	"long":   TypeInt64,
	"float":  TypeFloat32,
	"double": TypeFloat64,
}

// ParseSemanticType parses a type token case-insensitively.
func ParseSemanticType(s string) (SemanticType, bool) {
	t, ok := vocabulary[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

func (t SemanticType) IsValid() bool {
	return t >= TypeInt16 && t <= TypeEnum
}

func (t SemanticType) IsInteger() bool {
	switch t {
	default:
		return false
	case TypeInt16, TypeInt32, TypeInt64:
		return true
	}
}

func (t SemanticType) IsFloat() bool {
	switch t {
	default:
		return false
	case TypeFloat32, TypeFloat64:
		return true
	}
}

func (t SemanticType) IsNumber() bool {
	return t.IsInteger() || t.IsFloat()
}

// Bits returns the width of a numeric type.
func (t SemanticType) Bits() int {
	switch t {
	default:
		panic("only numeric types have a meaningful width, but requested for: " + t.String())
	case TypeInt16:
		return 16
	case TypeInt32, TypeFloat32:
		return 32
	case TypeInt64, TypeFloat64:
		return 64
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t SemanticType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, errs.Newf(errs.KindCoercionTypeMismatch, "invalid semantic type %d", int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SemanticType) UnmarshalText(text []byte) error {
	v, ok := ParseSemanticType(string(text))
	if !ok {
		return errs.Newf(errs.KindCoercionTypeMismatch, "unknown semantic type %q", string(text))
	}

	*t = v

	return nil
}
