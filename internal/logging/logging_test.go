package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "loupe.log")

	logger, closer, err := New(Config{Level: "DEBUG", File: path})
	require.NoError(t, err)
	logger.Debug().Str("root", "/logs").Msg("watching")
	logger.Trace().Msg("dropped")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "/logs", entry["root"])
	assert.Equal(t, "watching", entry["message"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.ErrorContains(t, err, "parse log level")
}

func TestNew_NoDestinationIsNop(t *testing.T) {
	logger, closer, err := New(Config{})
	require.NoError(t, err)
	logger.Error().Msg("nowhere")
	assert.NoError(t, closer.Close())
}
