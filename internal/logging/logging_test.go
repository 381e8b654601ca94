package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestAdapterJSON(t *testing.T) {
	var buffer bytes.Buffer
	adapter := NewAdapter(New("json", &buffer).Level(zerolog.InfoLevel))

	adapter.Debug("hidden %d", 1)
	adapter.Info("parsed %d accounts", 3)

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "parsed 3 accounts", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestAdapterConsole(t *testing.T) {
	var buffer bytes.Buffer
	adapter := NewAdapter(New("console", &buffer))

	adapter.Warn("skipped %s", "line")

	assert.Contains(t, buffer.String(), "skipped line")
}
