// Package table defines the tabular data model consumed by sheetgen: untyped
// cells, raw rows, table identity, and the Reader contract implemented by every
// source under sheetgen/source.
//
// Generated loader code depends on this package and on sheetgen/coerce only.
package table
