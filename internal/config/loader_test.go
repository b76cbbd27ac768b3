package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, 3, cfg.Rounds)
	assert.Equal(t, 300, cfg.RoundSeconds)
	assert.Equal(t, 10, cfg.MinActionStamina)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("UFC_ADDR", ":9999")
	t.Setenv("UFC_ROUND_SECONDS", "60")
	t.Setenv("UFC_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 60, cfg.RoundSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Rounds, "untouched keys keep defaults")
}

func TestLoadFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ufc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("round_seconds: 120\nbreak_seconds: 7\n"), 0o600))
	t.Setenv("UFC_CONFIG", path)
	t.Setenv("UFC_ROUND_SECONDS", "90")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.RoundSeconds, "env wins over file")
	assert.Equal(t, 7, cfg.BreakSeconds, "file wins over defaults")
}

func TestLoadPortVariable(t *testing.T) {
	t.Setenv("PORT", "8081")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Addr)
}

func TestLoadRejectsNonsense(t *testing.T) {
	t.Setenv("UFC_ROUNDS", "0")
	_, err := Load()
	assert.Error(t, err)
}
