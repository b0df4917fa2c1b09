package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgen/errs"
)

func TestDiagnostics_AddCellError(t *testing.T) {
	var d Diagnostics

	cause := errs.Newf(errs.KindNumericParse, "%q is not a valid int32", "abc")
	d.AddCellError("Items", "HP", errs.At(cause, 2, 1))

	require.Len(t, d.Errors, 1)
	got := d.Errors[0]
	assert.Equal(t, "numeric_parse", got.Code)
	assert.Equal(t, &errs.Coord{Row: 2, Column: 1}, got.Cell)
	assert.Equal(t, `[Items] HP Row[2], Cell[1]: [numeric_parse] "abc" is not a valid int32`, got.String())
	assert.True(t, d.HasErrors())
	assert.Error(t, d.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddWarning(CodeEmptyTable, "worksheet is empty", "Empty", "")
	b.AddInfo(CodeColumnAdded, "column added", "Items", "Tags")
	b.AddError("invalid_config", "runtime path is required", "", "")

	a.Merge(b)

	assert.Len(t, a.All(), 3)
	assert.Equal(t, SeverityError, a.All()[0].Severity)
	assert.EqualError(t, a.Error(), "[invalid_config] runtime path is required")
	assert.Equal(t, "warning", SeverityWarning.String())
}

func TestDiagnostics_Valid(t *testing.T) {
	var d Diagnostics

	assert.False(t, d.HasErrors())
	assert.NoError(t, d.Error())
}
