package schema

import (
	"go/token"
	"strings"

	"sheetgen/coerce"
	"sheetgen/errs"
	"sheetgen/internal/match"
	"sheetgen/internal/naming"
)

const (
	typeSeparator = ":"
	arraySuffix   = "[]"
)

// ParseHeader parses one raw header cell into a column at the given ordinal.
//
//	"Name"          -> string column
//	"HP:int32"      -> int32 column
//	"Tags:string[]" -> string array column
//
// The name must be a legal Go identifier and must not be a Go keyword in
// any letter case.
func ParseHeader(raw string, ordinal int) (Column, error) {
	name, typeToken, annotated := strings.Cut(strings.TrimSpace(raw), typeSeparator)
	name = strings.TrimSpace(name)

	if err := ValidateIdentifier(name); err != nil {
		return Column{}, err
	}

	col := Column{
		Name:    name,
		Type:    coerce.TypeString,
		Ordinal: ordinal,
	}

	if !annotated {
		return col, nil
	}

	typeToken = strings.TrimSpace(typeToken)
	if strings.HasSuffix(typeToken, arraySuffix) {
		col.IsArray = true
		typeToken = strings.TrimSpace(strings.TrimSuffix(typeToken, arraySuffix))
	}

	t, ok := coerce.ParseSemanticType(typeToken)
	if !ok {
		return Column{}, errs.Newf(errs.KindInvalidHeaderIdentifier,
			"invalid column header %q: unknown type %q%s", raw, typeToken, match.Hint(typeToken, typeNames()))
	}

	col.Type = t
	if t == coerce.TypeEnum {
		col.EnumType = naming.Exported(name)
	}

	return col, nil
}

func typeNames() []string {
	out := make([]string, 0, int(coerce.TypeEnum))
	for t := coerce.TypeInt16; t <= coerce.TypeEnum; t++ {
		out = append(out, t.String())
	}

	return out
}

// HeaderName extracts and validates the cleaned name of a header cell
// without looking at its type annotation.
func HeaderName(raw string) (string, error) {
	name, _, _ := strings.Cut(strings.TrimSpace(raw), typeSeparator)
	name = strings.TrimSpace(name)

	if err := ValidateIdentifier(name); err != nil {
		return "", err
	}

	return name, nil
}

// ValidateIdentifier checks that name can be used as a generated field name.
func ValidateIdentifier(name string) error {
	if name == "" {
		return errs.New(errs.KindInvalidHeaderIdentifier, "empty column header")
	}

	hasLetter := false

	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return errs.Newf(errs.KindInvalidHeaderIdentifier,
					"invalid column header name %q: must not start with a digit", name)
			}
		default:
			return errs.Newf(errs.KindInvalidHeaderIdentifier,
				"invalid column header name %q: only letters, digits and underscore are allowed", name)
		}
	}

	if !hasLetter {
		return errs.Newf(errs.KindInvalidHeaderIdentifier,
			"invalid column header name %q: must contain a letter", name)
	}

	if token.IsKeyword(strings.ToLower(name)) {
		return errs.Newf(errs.KindInvalidHeaderIdentifier,
			"invalid column header name %q: Go keywords must not be used, in any case", name)
	}

	return nil
}
