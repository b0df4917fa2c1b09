package gsheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgen/errs"
	"sheetgen/table"
)

type fakeAPI struct {
	titles []string
	ranges map[string][][]any
	calls  []string
}

func (f *fakeAPI) sheetTitles(context.Context, string) ([]string, error) {
	if f.titles == nil {
		return nil, errors.New("403 forbidden")
	}

	return f.titles, nil
}

func (f *fakeAPI) values(_ context.Context, _, rng, render string) ([][]any, error) {
	f.calls = append(f.calls, render+" "+rng)

	v, ok := f.ranges[rng]
	if !ok {
		return nil, errors.New("unable to parse range")
	}

	return v, nil
}

func TestReader(t *testing.T) {
	fake := &fakeAPI{
		titles: []string{"Items", "Bob's"},
		ranges: map[string][][]any{
			"'Items'!1:1":        {{"Name", "HP:int32", "Alive:bool", ""}},
			"'Items'!2:1048576":  {{"Sword", 10.0, true}, {"", 2.5, false, "x"}},
			"'Bob''s'!1:1":       {},
			"'Bob''s'!2:1048576": nil,
		},
	}
	r := &Reader{id: "sheet-id", api: fake}
	ctx := context.Background()

	tables, err := r.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Items", "Bob's"}, tables)

	header, err := r.ReadHeader(ctx, "Items")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "HP:int32", "Alive:bool"}, header)

	rows, err := r.ReadRows(ctx, "Items")
	require.NoError(t, err)
	assert.Equal(t, []table.RawRow{
		{table.String("Sword"), table.Number(10), table.Bool(true)},
		{table.Empty(), table.Number(2.5), table.Bool(false), table.String("x")},
	}, rows)

	header, err = r.ReadHeader(ctx, "Bob's")
	require.NoError(t, err)
	assert.Empty(t, header)

	assert.Contains(t, fake.calls, "UNFORMATTED_VALUE 'Items'!2:1048576")

	_, err = r.ReadRows(ctx, "Missing")
	assert.True(t, errs.IsSourceUnavailable(err))

	_, err = (&Reader{id: "x", api: &fakeAPI{}}).ListTables(ctx)
	assert.True(t, errs.IsSourceUnavailable(err))
}
