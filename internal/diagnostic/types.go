package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"sheetgen/errs"
)

// Diagnostics holds all diagnostic information of one run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code identifies the kind of finding, e.g. "numeric_parse" or
	// "empty_table".
	Code string
	// Message is the human-readable description.
	Message string
	// Table identifies which table this relates to (if any).
	Table string
	// Column is the column name this relates to (if any).
	Column string
	// Cell is the body coordinate of a cell-level finding.
	Cell *errs.Coord
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Well-known codes that are not error kinds.
const (
	CodeEmptyTable    = "empty_table"
	CodeColumnAdded   = "column_added"
	CodeColumnDropped = "column_dropped"
	CodeTableSkipped  = "table_skipped"
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, table, column string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Table:    table,
		Column:   column,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, table, column string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Table:    table,
		Column:   column,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, table, column string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Table:    table,
		Column:   column,
	})
}

// AddCellError records a cell-level failure. The code is the error kind and
// the coordinate is taken from err when present.
func (d *Diagnostics) AddCellError(table, column string, err error) {
	diag := Diagnostic{
		Severity: SeverityError,
		Code:     errs.KindOf(err).String(),
		Message:  err.Error(),
		Table:    table,
		Column:   column,
	}

	var e *errs.Error
	if errors.As(err, &e) {
		diag.Message = e.Message
		if e.Cause != nil {
			diag.Message += ": " + e.Cause.Error()
		}

		diag.Cell = e.Cell
	}

	d.Errors = append(d.Errors, diag)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string, e.g.
//
//	[Items] HP Row[2], Cell[1]: [numeric_parse] "abc" is not a valid int32
func (d Diagnostic) String() string {
	var prefix []string
	if d.Table != "" {
		prefix = append(prefix, "["+d.Table+"]")
	}

	if d.Column != "" {
		prefix = append(prefix, d.Column)
	}

	if d.Cell != nil {
		prefix = append(prefix, d.Cell.String())
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
