package table

import "strconv"

// CellKind is the storage kind of a raw cell as reported by a reader.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellString
	CellBool
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellNumber:
		return "number"
	case CellString:
		return "string"
	case CellBool:
		return "bool"
	default:
		return "CellKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is one untyped spreadsheet value.
type Cell struct {
	Kind CellKind
	Num  float64
	Str  string
	Bool bool
}

// Empty returns an absent cell.
func Empty() Cell { return Cell{} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }

// String returns a text cell.
func String(s string) Cell { return Cell{Kind: CellString, Str: s} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Text renders the cell as text. Numbers use the shortest fixed-point
// representation that round-trips, booleans render as "TRUE"/"FALSE".
func (c Cell) Text() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellString:
		return c.Str
	case CellBool:
		if c.Bool {
			return "TRUE"
		}

		return "FALSE"
	default:
		return ""
	}
}

func (c Cell) String() string {
	if c.Kind == CellString {
		return strconv.Quote(c.Str)
	}

	if c.Kind == CellEmpty {
		return "<empty>"
	}

	return c.Text()
}

// RawRow is one table row in header order.
type RawRow []Cell

// At returns the cell at column i, or an empty cell when the row is shorter.
func (r RawRow) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}

	return r[i]
}
