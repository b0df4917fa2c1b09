// Package diagnostic collects the non-fatal findings of an import, a
// generation or a load run.
//
// Key capabilities:
//   - Per-cell coercion failures with their Row[r], Cell[c] position
//   - Schema change reports (added and dropped columns)
//   - Warnings for empty worksheets and skipped tables
package diagnostic
