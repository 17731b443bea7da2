package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Debug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, closer, err := Setup(Options{Debug: true, Path: path})
	require.NoError(t, err)

	logger.Debug().Str("booking", "bk-1").Msg("drag started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "drag started", entry["message"])
	assert.Equal(t, "bk-1", entry["booking"])
	assert.Equal(t, "debug", entry["level"])
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Setup(Options{Console: true, Out: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug().Msg("hidden")
	logger.Info().Str("addr", ":8080").Msg("listening")

	out := buf.String()
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, ":8080")
	assert.NotContains(t, out, "hidden")
}

func TestSetup_Disabled(t *testing.T) {
	logger, closer, err := Setup(Options{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestSetup_BadPath(t *testing.T) {
	_, _, err := Setup(Options{Debug: true, Path: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}
