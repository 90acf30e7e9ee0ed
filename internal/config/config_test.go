package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.DisconnectGrace)
	assert.Equal(t, 30, cfg.MaxWordLength)

	rules := cfg.Rules()
	assert.Equal(t, 2, rules.StartingLives)
	assert.Equal(t, 8, rules.BombDuration())
}

func TestLoad_DotenvAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORDBOMB_UNUSED=1\n"), 0o600))
	t.Setenv("DISCONNECT_GRACE", "250ms")
	t.Setenv("MIN_WORDS_PER_PROMPT", "500")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.DisconnectGrace)
	assert.Equal(t, 500, cfg.Rules().MinWordsPerPrompt)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("PORT", "not-an-int")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Config{
		Port:               0,
		LogFormat:          "xml",
		MaxWordLength:      30,
		DisconnectGrace:    time.Second,
		StartingLives:      3,
		MaxLives:           2,
		TurnDurationSec:    8,
		MinTurnDurationSec: 5,
		MinWordLength:      3,
		MinWordsPerPrompt:  5,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(Config{LogLevel: "debug", LogFormat: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(Config{LogLevel: "loud"})
	assert.Error(t, err)
}
