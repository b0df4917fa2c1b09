// Package errs provides the error type shared by every sheetgen package and by
// generated loader code.
//
// Structural failures (unreadable source, bad header, bad configuration) abort
// the surrounding operation. Cell-level failures carry a row/column coordinate
// and are collected instead of aborting a load.
//
// Usage:
//
//	// In a reader, wrap native errors:
//	return errs.Wrap(errs.KindSourceUnavailable, "open workbook", err)
//
//	// In a caller, check the kind:
//	if errs.IsInvalidHeader(err) {
//	    ...
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises an error without exposing reader or parser specifics.
type Kind int

const (
	KindUnknown                 Kind = iota
	KindSourceUnavailable            // table reader cannot produce headers or rows
	KindInvalidHeaderIdentifier      // header name is not a legal identifier
	KindNumericParse                 // bad numeric literal or overflow
	KindUnknownEnumMember            // enum lookup miss
	KindCoercionTypeMismatch         // unsupported cell/type combination
	KindInvalidConfig                // missing or inconsistent configuration
)

func (k Kind) String() string {
	switch k {
	case KindSourceUnavailable:
		return "source_unavailable"
	case KindInvalidHeaderIdentifier:
		return "invalid_header_identifier"
	case KindNumericParse:
		return "numeric_parse"
	case KindUnknownEnumMember:
		return "unknown_enum_member"
	case KindCoercionTypeMismatch:
		return "coercion_type_mismatch"
	case KindInvalidConfig:
		return "invalid_config"
	default:
		return "unknown"
	}
}

// Coord is a 0-based (row, column) position inside a table body.
type Coord struct {
	Row    int
	Column int
}

func (c Coord) String() string {
	return fmt.Sprintf("Row[%d], Cell[%d]", c.Row, c.Column)
}

// Error is the single error type returned by sheetgen packages.
type Error struct {
	Kind    Kind
	Message string
	// Cell is set for cell-level failures produced while loading rows.
	Cell  *Coord
	Cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.Cell != nil {
		msg += " at " + e.Cell.String()
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message and underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// At returns a copy of err positioned at (row, column). Errors that are not
// *Error are wrapped as KindCoercionTypeMismatch. A nil err stays nil.
func At(err error, row, column int) error {
	if err == nil {
		return nil
	}

	var e *Error
	if !errors.As(err, &e) {
		e = Wrap(KindCoercionTypeMismatch, "cell conversion failed", err)
	}

	cp := *e
	cp.Cell = &Coord{Row: row, Column: column}

	return &cp
}

// KindOf extracts the Kind from any error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// CoordOf returns the cell coordinate attached to err, if any.
func CoordOf(err error) (Coord, bool) {
	var e *Error
	if errors.As(err, &e) && e.Cell != nil {
		return *e.Cell, true
	}

	return Coord{}, false
}

// IsSourceUnavailable reports whether err came from a failing table reader.
func IsSourceUnavailable(err error) bool {
	return KindOf(err) == KindSourceUnavailable
}

// IsInvalidHeader reports whether err is a header identifier failure.
func IsInvalidHeader(err error) bool {
	return KindOf(err) == KindInvalidHeaderIdentifier
}

// IsInvalidConfig reports whether err is a configuration failure.
func IsInvalidConfig(err error) bool {
	return KindOf(err) == KindInvalidConfig
}

// IsCellError reports whether err is one of the per-cell coercion kinds.
func IsCellError(err error) bool {
	switch KindOf(err) {
	case KindNumericParse, KindUnknownEnumMember, KindCoercionTypeMismatch:
		return true
	default:
		return false
	}
}
