// Package gen renders Go source for a resolved table schema.
//
// Generation uses text/template + go/format. Every kind of output has a
// built-in template that a file named "<kind>.go.tmpl" in the configured
// template path replaces.
//
// Output kinds:
//   - data_record: one struct field per column, in ordinal order
//   - container: the record slice plus the table identity
//   - editor_glue: a Load function with one direct assignment per column
//   - enum_constants: one integer type per enum table
package gen
