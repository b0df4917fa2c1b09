// Package all registers every built-in source kind. Import it for its side
// effects:
//
//	import _ "sheetgen/source/all"
package all

import (
	_ "sheetgen/source/csvfile"
	_ "sheetgen/source/gsheet"
	_ "sheetgen/source/objstore"
	_ "sheetgen/source/sqltable"
	_ "sheetgen/source/xlsx"
)
