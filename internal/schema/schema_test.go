package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgen/coerce"
	"sheetgen/errs"
	"sheetgen/table"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		raw     string
		want    Column
		wantErr bool
	}{
		{raw: "Name", want: Column{Name: "Name", Type: coerce.TypeString}},
		{raw: "Damage:int32", want: Column{Name: "Damage", Type: coerce.TypeInt32}},
		{raw: " Tags : string[] ", want: Column{Name: "Tags", Type: coerce.TypeString, IsArray: true}},
		{raw: "Speed:double", want: Column{Name: "Speed", Type: coerce.TypeFloat64}},
		{raw: "Kind:enum", want: Column{Name: "Kind", Type: coerce.TypeEnum, EnumType: "Kind"}},
		{raw: "ids:long[]", want: Column{Name: "ids", Type: coerce.TypeInt64, IsArray: true}},
		{raw: "1BadName:int32", wantErr: true},
		{raw: "Bad-Name", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "___", wantErr: true},
		{raw: "Type", wantErr: true},
		{raw: "RANGE:int32", wantErr: true},
		{raw: "HP:decimal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseHeader(tt.raw, 0)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsInvalidHeader(err), err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHeader_TypeHint(t *testing.T) {
	_, err := ParseHeader("HP:int33", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "int32"?`)
}

func TestHeaderName(t *testing.T) {
	name, err := HeaderName("  HP:int32 ")
	require.NoError(t, err)
	assert.Equal(t, "HP", name)

	_, err = HeaderName("func")
	assert.True(t, errs.IsInvalidHeader(err))
}

func TestReconcile_FreshImport(t *testing.T) {
	got, err := Reconcile(nil, []string{"Id:int32", "Name", "Tags:string[]"}, false)
	require.NoError(t, err)

	assert.Equal(t, Schema{
		{Name: "Id", Type: coerce.TypeInt32, Ordinal: 0},
		{Name: "Name", Type: coerce.TypeString, Ordinal: 1},
		{Name: "Tags", Type: coerce.TypeString, IsArray: true, Ordinal: 2},
	}, got)
	assert.NoError(t, got.Validate())
}

func TestReconcile_KeepsPreviousTypes(t *testing.T) {
	prev := Schema{
		{Name: "Name", Type: coerce.TypeString, Ordinal: 0},
		{Name: "HP", Type: coerce.TypeInt32, Ordinal: 1},
	}

	got, err := Reconcile(prev, []string{"Name", "HP"}, false)
	require.NoError(t, err)
	assert.Equal(t, prev, got)

	// A renamed column is a new column and gets its type from the header.
	got, err = Reconcile(prev, []string{"Name", "Health"}, false)
	require.NoError(t, err)
	assert.Equal(t, Schema{
		{Name: "Name", Type: coerce.TypeString, Ordinal: 0},
		{Name: "Health", Type: coerce.TypeString, Ordinal: 1},
	}, got)
}

func TestReconcile_ReorderAndDrop(t *testing.T) {
	prev := Schema{
		{Name: "A", Type: coerce.TypeInt16, Ordinal: 0},
		{Name: "B", Type: coerce.TypeBool, Ordinal: 1},
		{Name: "C", Type: coerce.TypeFloat32, IsArray: true, Ordinal: 2},
	}

	got, err := Reconcile(prev, []string{"C", "New:int64", "A"}, false)
	require.NoError(t, err)
	assert.Equal(t, Schema{
		{Name: "C", Type: coerce.TypeFloat32, IsArray: true, Ordinal: 0},
		{Name: "New", Type: coerce.TypeInt64, Ordinal: 1},
		{Name: "A", Type: coerce.TypeInt16, Ordinal: 2},
	}, got)

	added, dropped := Diff(prev, got)
	assert.Equal(t, []string{"New"}, added)
	assert.Equal(t, []string{"B"}, dropped)
}

func TestReconcile_FullReimport(t *testing.T) {
	prev := Schema{{Name: "HP", Type: coerce.TypeInt32, Ordinal: 0}}

	got, err := Reconcile(prev, []string{"HP"}, true)
	require.NoError(t, err)
	assert.Equal(t, Schema{{Name: "HP", Type: coerce.TypeString, Ordinal: 0}}, got)
}

func TestReconcile_Errors(t *testing.T) {
	prev := Schema{{Name: "HP", Type: coerce.TypeInt32, Ordinal: 0}}
	snapshot := prev.Clone()

	got, err := Reconcile(prev, []string{"HP", "1BadName:int32"}, false)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidHeader(err))
	assert.Nil(t, got)
	assert.Equal(t, snapshot, prev)

	_, err = Reconcile(nil, []string{"Name", "NAME"}, false)
	assert.True(t, errs.IsInvalidHeader(err))
}

func TestReconcile_Empty(t *testing.T) {
	got, err := Reconcile(Schema{{Name: "X", Type: coerce.TypeBool}}, nil, false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSchema_Validate(t *testing.T) {
	assert.Equal(t, errs.KindInvalidConfig, errs.KindOf(Schema{{Name: "A", Type: coerce.TypeBool, Ordinal: 1}}.Validate()))
	assert.Equal(t, errs.KindCoercionTypeMismatch, errs.KindOf(Schema{{Name: "A"}}.Validate()))
	assert.Equal(t, errs.KindInvalidHeaderIdentifier, errs.KindOf(Schema{
		{Name: "A", Type: coerce.TypeBool, Ordinal: 0},
		{Name: "a", Type: coerce.TypeBool, Ordinal: 1},
	}.Validate()))
}

func TestSchema_EnumTypes(t *testing.T) {
	s := Schema{
		{Name: "kind", Type: coerce.TypeEnum, Ordinal: 0},
		{Name: "Kinds", Type: coerce.TypeEnum, IsArray: true, EnumType: "Kind", Ordinal: 1},
		{Name: "Rank", Type: coerce.TypeEnum, EnumType: "Rank", Ordinal: 2},
	}

	assert.Equal(t, []string{"Kind", "Rank"}, s.EnumTypes())
}

func TestBuildEnumTable(t *testing.T) {
	rows := []table.RawRow{
		{table.String("Fire"), table.Number(10)},
		{table.String("Water")},
		{table.Empty()},
		{table.String("Earth"), table.String("")},
	}

	got, err := BuildEnumTable("Element", rows)
	require.NoError(t, err)
	assert.Equal(t, EnumTable{
		Name: "Element",
		Members: []EnumMember{
			{Name: "Fire", Value: 10},
			{Name: "Water", Value: 1},
			{Name: "Earth", Value: 2},
		},
	}, got)

	m, ok := got.Lookups().Lookup("EARTH")
	require.True(t, ok)
	assert.Equal(t, int64(2), m.Value)
}

func TestBuildEnumTable_BlankValueUsesPosition(t *testing.T) {
	rows := []table.RawRow{
		{table.String("Fire"), table.String(" ")},
		{table.String("Water"), table.String("")},
		{table.String("Earth"), table.Empty()},
	}

	got, err := BuildEnumTable("Element", rows)
	require.NoError(t, err)
	assert.Equal(t, []EnumMember{
		{Name: "Fire", Value: 0},
		{Name: "Water", Value: 1},
		{Name: "Earth", Value: 2},
	}, got.Members)
}

func TestEnumTable_TypeName(t *testing.T) {
	assert.Equal(t, "ElementKind", EnumTable{Name: "element_kind"}.TypeName())

	col, err := ParseHeader("element_kind:enum", 0)
	require.NoError(t, err)
	assert.Equal(t, col.EnumTypeName(), EnumTable{Name: "element_kind"}.TypeName())
}

func TestBuildEnumTable_Errors(t *testing.T) {
	_, err := BuildEnumTable("Element", []table.RawRow{{table.String("Fire")}, {table.String("fire")}})
	require.Error(t, err)

	coord, ok := errs.CoordOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.Coord{Row: 1, Column: 0}, coord)

	_, err = BuildEnumTable("Element", []table.RawRow{{table.String("Fire"), table.String("ten")}})
	assert.Equal(t, errs.KindNumericParse, errs.KindOf(err))

	_, err = BuildEnumTable("Element", []table.RawRow{{table.String("2nd")}})
	assert.True(t, errs.IsInvalidHeader(err))
}
