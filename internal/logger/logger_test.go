package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	log.With().Str("table", "Items").Int("row", 3).Logger().Warnf("worksheet %s is empty", "Items")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "worksheet Items is empty", entry["message"])
	assert.Equal(t, "Items", entry["table"])
	assert.InDelta(t, 3, entry["row"], 0)
}

func TestLogger_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "error", Format: "json", Output: buf})

	log.Info("dropped")
	log.Debugf("dropped %d", 1)
	assert.Zero(t, buf.Len())

	log.Err(errors.New("boom"), "failed")
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestLogger_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	New(&Config{Level: "debug", Format: "console", Output: buf}).Debug("hello")

	assert.Contains(t, buf.String(), "hello")
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Format: "json", Output: buf})

	FromContext(log.WithContext(context.Background())).Info("via context")
	assert.Contains(t, buf.String(), "via context")

	assert.NotNil(t, FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}
