package coerce

import (
	"strconv"
	"strings"

	"sheetgen/errs"
	"sheetgen/table"
)

// Separator splits array cells.
const Separator = ","

// Array splits the cell text on Separator, trims every element and converts
// it with elem. Blank cells yield an empty, non-nil slice. When any element
// fails, the whole cell fails and no partial slice is returned.
func Array[T any](c table.Cell, elem func(table.Cell) (T, error)) ([]T, error) {
	text := c.Text()
	if strings.TrimSpace(text) == "" {
		return []T{}, nil
	}

	parts := strings.Split(text, Separator)
	out := make([]T, 0, len(parts))

	for i, part := range parts {
		v, err := elem(table.String(strings.TrimSpace(part)))
		if err != nil {
			return nil, errs.Wrap(errs.KindOf(err), "element "+strconv.Itoa(i)+" of "+strconv.Quote(text), err)
		}

		out = append(out, v)
	}

	return out, nil
}

// boolElement accepts boolean literals, since array elements always arrive as text.
func boolElement(c table.Cell) (bool, error) {
	if c.Kind != table.CellString || blank(c) {
		return Bool(c)
	}

	v, err := strconv.ParseBool(c.Str)
	if err != nil {
		return false, mismatch(c, TypeBool)
	}

	return v, nil
}

func Int16s(c table.Cell) ([]int16, error)     { return Array(c, Int16) }
func Int32s(c table.Cell) ([]int32, error)     { return Array(c, Int32) }
func Int64s(c table.Cell) ([]int64, error)     { return Array(c, Int64) }
func Float32s(c table.Cell) ([]float32, error) { return Array(c, Float32) }
func Float64s(c table.Cell) ([]float64, error) { return Array(c, Float64) }
func Bools(c table.Cell) ([]bool, error)       { return Array(c, boolElement) }
func Strings(c table.Cell) ([]string, error)   { return Array(c, String) }

// Enums is Array for enum elements.
func Enums[E any](c table.Cell, lookup func(string) (E, bool)) ([]E, error) {
	return Array(c, func(e table.Cell) (E, error) {
		return Enum(e, lookup)
	})
}
