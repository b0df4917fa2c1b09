package coerce

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"sheetgen/errs"
	"sheetgen/table"
)

// blank reports whether the cell carries no usable value. Whitespace-only text
// counts as blank for every target except String.
func blank(c table.Cell) bool {
	return c.IsEmpty() || (c.Kind == table.CellString && strings.TrimSpace(c.Str) == "")
}

func mismatch(c table.Cell, t SemanticType) error {
	return errs.Newf(errs.KindCoercionTypeMismatch, "cannot convert %s cell %s to %s", c.Kind, c, t)
}

func integer(c table.Cell, t SemanticType) (int64, error) {
	if blank(c) {
		return 0, nil
	}

	switch c.Kind {
	case table.CellNumber:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return 0, errs.Newf(errs.KindNumericParse, "%v is not a valid %s", c.Num, t)
		}

		r := math.RoundToEven(c.Num)

		limit := math.Ldexp(1, t.Bits()-1)
		if r < -limit || r >= limit {
			return 0, errs.Newf(errs.KindNumericParse, "%s overflows %s", c.Text(), t)
		}

		return int64(r), nil

	case table.CellString:
		s := strings.TrimSpace(c.Str)

		v, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return 0, numericError(s, t, err)
		}

		return v, nil

	default:
		return 0, mismatch(c, t)
	}
}

func float(c table.Cell, t SemanticType) (float64, error) {
	if blank(c) {
		return 0, nil
	}

	switch c.Kind {
	case table.CellNumber:
		if t == TypeFloat32 && !math.IsInf(c.Num, 0) && math.Abs(c.Num) > math.MaxFloat32 {
			return 0, errs.Newf(errs.KindNumericParse, "%s overflows %s", c.Text(), t)
		}

		return c.Num, nil

	case table.CellString:
		s := strings.TrimSpace(c.Str)

		v, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return 0, numericError(s, t, err)
		}

		return v, nil

	default:
		return 0, mismatch(c, t)
	}
}

func numericError(s string, t SemanticType, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return errs.Newf(errs.KindNumericParse, "%q overflows %s", s, t)
	}

	return errs.Newf(errs.KindNumericParse, "%q is not a valid %s", s, t)
}

// Int16 converts c to int16.
func Int16(c table.Cell) (int16, error) {
	v, err := integer(c, TypeInt16)
	return int16(v), err
}

// Int32 converts c to int32.
func Int32(c table.Cell) (int32, error) {
	v, err := integer(c, TypeInt32)
	return int32(v), err
}

// Int64 converts c to int64.
func Int64(c table.Cell) (int64, error) {
	return integer(c, TypeInt64)
}

// Float32 converts c to float32.
func Float32(c table.Cell) (float32, error) {
	v, err := float(c, TypeFloat32)
	return float32(v), err
}

// Float64 converts c to float64.
func Float64(c table.Cell) (float64, error) {
	return float(c, TypeFloat64)
}

// String converts c to string. Number cells are formatted as their shortest
// round-trip fixed-point decimal, so a numeric-looking column declared as
// string keeps "123" rather than "123.000000".
func String(c table.Cell) (string, error) {
	switch c.Kind {
	case table.CellEmpty:
		return "", nil
	case table.CellString, table.CellNumber:
		return c.Text(), nil
	default:
		return "", mismatch(c, TypeString)
	}
}

// Bool converts c to bool. Only boolean cells are accepted.
func Bool(c table.Cell) (bool, error) {
	if blank(c) {
		return false, nil
	}

	if c.Kind != table.CellBool {
		return false, mismatch(c, TypeBool)
	}

	return c.Bool, nil
}

// Enum looks the cell text up with lookup, which must match member names
// case-insensitively.
func Enum[E any](c table.Cell, lookup func(string) (E, bool)) (E, error) {
	var zero E
	if blank(c) {
		return zero, nil
	}

	name := strings.TrimSpace(c.Text())

	v, ok := lookup(name)
	if !ok {
		return zero, errs.Newf(errs.KindUnknownEnumMember, "%q is not a member of the enum", name)
	}

	return v, nil
}
