package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expomatematica/quizmat/internal/config"
)

func TestNew_JSONWithLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)

	log.Info("dropped")
	log.Warn("kept", "record_id", "r1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "r1", entry["record_id"])
	assert.Equal(t, "quizmat", entry["app"])
}

func TestInit_WritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "quizmat.log")
	closer, err := Init(config.LogConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	slog.Debug("hello", "session_id", "s1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"s1"`)
}

func TestInit_BadLevel(t *testing.T) {
	_, err := Init(config.LogConfig{Level: "chatty"})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestInit_NoFileDiscards(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closer, err := Init(config.LogConfig{Level: "info"})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}
