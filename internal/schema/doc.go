// Package schema holds the resolved column model of a table and the two
// operations that produce it: header parsing and reconciliation.
//
// A header cell is either a bare name ("Name"), which becomes a string
// column, or a name with an explicit type ("HP:int32", "Tags:string[]").
// Reconciliation merges a freshly read header row into the previous schema so
// that types chosen by hand survive re-imports for every column whose name did
// not change.
package schema
