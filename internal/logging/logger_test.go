package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToDatedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(Config{Dir: dir, Level: zerolog.InfoLevel})
	require.NoError(t, err)
	defer logger.Close()

	logger.Info().Str("component", "test").Msg("hello log file")

	assert.Contains(t, logger.Path(), "voicekit_")
	data, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello log file")
}

func TestNew_LevelGatesOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(Config{Dir: dir, Level: zerolog.WarnLevel})
	require.NoError(t, err)
	defer logger.Close()

	logger.Info().Msg("too quiet")
	logger.Warn().Msg("loud enough")

	data, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "too quiet")
	assert.Contains(t, string(data), "loud enough")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, zerolog.InfoLevel, cfg.Level)
	assert.True(t, cfg.Console)
	assert.Empty(t, cfg.Dir)
}
