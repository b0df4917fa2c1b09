package gen

import (
	"fmt"

	"sheetgen/coerce"
	"sheetgen/errs"
	"sheetgen/internal/schema"
)

// typeRule maps one scalar kind to its Go type and coerce helpers.
type typeRule struct {
	goType string
	scalar string
	array  string
}

var typeRules = map[coerce.SemanticType]typeRule{
	coerce.TypeInt16:   {goType: "int16", scalar: "coerce.Int16", array: "coerce.Int16s"},
	coerce.TypeInt32:   {goType: "int32", scalar: "coerce.Int32", array: "coerce.Int32s"},
	coerce.TypeInt64:   {goType: "int64", scalar: "coerce.Int64", array: "coerce.Int64s"},
	coerce.TypeFloat32: {goType: "float32", scalar: "coerce.Float32", array: "coerce.Float32s"},
	coerce.TypeFloat64: {goType: "float64", scalar: "coerce.Float64", array: "coerce.Float64s"},
	coerce.TypeBool:    {goType: "bool", scalar: "coerce.Bool", array: "coerce.Bools"},
	coerce.TypeString:  {goType: "string", scalar: "coerce.String", array: "coerce.Strings"},
	coerce.TypeEnum:    {scalar: "coerce.Enum", array: "coerce.Enums"},
}

func lookupRule(col schema.Column) (typeRule, error) {
	rule, ok := typeRules[col.Type]
	if !ok {
		return typeRule{}, errs.Newf(errs.KindCoercionTypeMismatch,
			"column %q: no Go type for %s (array=%t)", col.Name, col.Type, col.IsArray)
	}

	return rule, nil
}

// goType returns the field type token of col. qualifier prefixes enum type
// names that live in another package.
func goType(col schema.Column, qualifier string) (string, error) {
	rule, err := lookupRule(col)
	if err != nil {
		return "", err
	}

	t := rule.goType
	if col.Type == coerce.TypeEnum {
		t = qualifier + col.EnumTypeName()
	}

	if col.IsArray {
		t = "[]" + t
	}

	return t, nil
}

// coerceExpr returns the expression converting cellExpr for col.
func coerceExpr(col schema.Column, cellExpr, qualifier string) (string, error) {
	rule, err := lookupRule(col)
	if err != nil {
		return "", err
	}

	helper := rule.scalar
	if col.IsArray {
		helper = rule.array
	}

	if col.Type == coerce.TypeEnum {
		return fmt.Sprintf("%s(%s, %sParse%s)", helper, cellExpr, qualifier, col.EnumTypeName()), nil
	}

	return fmt.Sprintf("%s(%s)", helper, cellExpr), nil
}
