// Package machine persists the per-table state between sessions: where the
// table comes from, its resolved columns and where generated code and data
// go.
//
// Example machine file:
//
//	version: "1"
//	source:
//	  kind: xlsx
//	  locator: tables/game.xlsx
//	table: Items
//	columns:
//	  - name: Name
//	    type: string
//	    ordinal: 0
//	  - name: HP
//	    type: int32
//	    ordinal: 1
//	  - name: Tags
//	    type: string
//	    array: true
//	    ordinal: 2
//	paths:
//	  templates: templates
//	  runtime: internal/data
//	  editor: internal/data
//	  asset: assets/items.yaml
//	package: data
package machine
