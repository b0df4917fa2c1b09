// Package coerce converts raw table cells into typed Go values.
//
// It is used in two places: the dynamic loader (Value) and code emitted by the
// generator, which calls the typed helpers (Int32, Float64, Enum, Array, ...)
// directly so that no reflection happens at load time.
//
// Rules:
//   - An empty cell yields the zero value, or an empty slice for arrays.
//   - Numeric targets accept number cells and numeric text; overflow and bad
//     literals fail with errs.KindNumericParse.
//   - String targets accept text verbatim and format number cells.
//   - Bool targets accept bool cells only.
//   - Enum targets look the cell text up case-insensitively.
//   - Arrays are comma-separated text; one bad element fails the whole cell.
package coerce
