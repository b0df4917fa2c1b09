package coerce

import (
	"strings"

	"sheetgen/errs"
	"sheetgen/table"
)

// Member is one resolved enum member.
type Member struct {
	Name  string
	Value int64
}

// Members is an ordered enum member list.
type Members []Member

// Lookup finds a member by name, ignoring case.
func (m Members) Lookup(name string) (Member, bool) {
	for _, member := range m {
		if strings.EqualFold(member.Name, name) {
			return member, true
		}
	}

	return Member{}, false
}

type converter func(table.Cell) (any, error)

func erase[T any](f func(table.Cell) (T, error)) converter {
	return func(c table.Cell) (any, error) {
		v, err := f(c)
		if err != nil {
			return nil, err
		}

		return v, nil
	}
}

var (
	scalarConverters = map[SemanticType]converter{
		TypeInt16:   erase(Int16),
		TypeInt32:   erase(Int32),
		TypeInt64:   erase(Int64),
		TypeFloat32: erase(Float32),
		TypeFloat64: erase(Float64),
		TypeBool:    erase(Bool),
		TypeString:  erase(String),
	}
	arrayConverters = map[SemanticType]converter{
		TypeInt16:   erase(Int16s),
		TypeInt32:   erase(Int32s),
		TypeInt64:   erase(Int64s),
		TypeFloat32: erase(Float32s),
		TypeFloat64: erase(Float64s),
		TypeBool:    erase(Bools),
		TypeString:  erase(Strings),
	}
)

// Value is the dynamic form of the typed helpers: it converts c according to
// (t, isArray). members is consulted for enum columns only; an enum column
// without members fails with errs.KindCoercionTypeMismatch.
//
// Scalars come back as int16, int32, int64, float32, float64, bool, string or
// Member; arrays as the matching slice type.
func Value(c table.Cell, t SemanticType, isArray bool, members Members) (any, error) {
	if t == TypeEnum {
		if members == nil {
			return nil, errs.New(errs.KindCoercionTypeMismatch, "enum column has no member table")
		}

		if isArray {
			return Enums(c, members.Lookup)
		}

		return Enum(c, members.Lookup)
	}

	convs := scalarConverters
	if isArray {
		convs = arrayConverters
	}

	conv, ok := convs[t]
	if !ok {
		return nil, errs.Newf(errs.KindCoercionTypeMismatch, "unsupported column type %s", t)
	}

	return conv(c)
}

// Zero returns the value an empty cell converts to.
func Zero(t SemanticType, isArray bool) any {
	if t == TypeEnum {
		if isArray {
			return []Member{}
		}

		return Member{}
	}

	v, err := Value(table.Empty(), t, isArray, nil)
	if err != nil {
		return nil
	}

	return v
}
