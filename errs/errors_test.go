package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := Wrap(KindSourceUnavailable, "open workbook", errors.New("no such file"))
	assert.Equal(t, "[source_unavailable] open workbook: no such file", err.Error())

	plain := New(KindInvalidConfig, "runtime path is required")
	assert.Equal(t, "[invalid_config] runtime path is required", plain.Error())
}

func TestAt(t *testing.T) {
	base := New(KindNumericParse, `"x" is not a valid int32`)

	err := At(base, 3, 1)
	require.Error(t, err)
	assert.Equal(t, `[numeric_parse] "x" is not a valid int32 at Row[3], Cell[1]`, err.Error())

	coord, ok := CoordOf(err)
	require.True(t, ok)
	assert.Equal(t, Coord{Row: 3, Column: 1}, coord)

	// The original error keeps no coordinate.
	_, ok = CoordOf(base)
	assert.False(t, ok)

	assert.NoError(t, At(nil, 1, 1))
}

func TestAt_ForeignError(t *testing.T) {
	err := At(errors.New("boom"), 0, 2)
	assert.Equal(t, KindCoercionTypeMismatch, KindOf(err))
	assert.True(t, IsCellError(err))
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("import: %w", New(KindInvalidHeaderIdentifier, "bad"))

	assert.True(t, IsInvalidHeader(wrapped))
	assert.False(t, IsSourceUnavailable(wrapped))
	assert.False(t, IsCellError(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, "unknown", KindUnknown.String())
}
