package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgen/errs"
)

func TestCell_Text(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"integral number", Number(42), "42"},
		{"fraction", Number(0.1), "0.1"},
		{"large number keeps fixed point", Number(1e21), "1000000000000000000000"},
		{"string", String("abc"), "abc"},
		{"bool", Bool(true), "TRUE"},
		{"empty", Empty(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.Text())
		})
	}
}

func TestRawRow_At(t *testing.T) {
	row := RawRow{String("a"), Number(1)}

	assert.Equal(t, String("a"), row.At(0))
	assert.True(t, row.At(2).IsEmpty())
	assert.True(t, row.At(-1).IsEmpty())
}

func TestTrimHeader(t *testing.T) {
	assert.Equal(t, []string{"A", "", "C"}, TrimHeader([]string{"A", "", "C", " ", ""}))
	assert.Empty(t, TrimHeader([]string{"", ""}))
}

func TestIsEnumTable(t *testing.T) {
	assert.True(t, IsEnumTable("Element", []string{"Element", "Value"}))
	assert.False(t, IsEnumTable("Fighter", []string{"Name", "HP"}))
	assert.False(t, IsEnumTable("Empty", nil))
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("mem").
		Put("B", []string{"X"}).
		Put("A", []string{"Y"}, RawRow{Number(1)})

	names, err := m.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, names)

	rows, err := m.ReadRows(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = m.ReadHeader(ctx, "missing")
	assert.True(t, errs.IsSourceUnavailable(err))
}
