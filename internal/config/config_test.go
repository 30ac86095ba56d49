package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/powerup"
	"github.com/abhisek/quizrush/internal/scoring"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("QUIZRUSH_LOG_LEVEL", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("QUIZRUSH_LOG_LEVEL", "")
	path := writeConfig(t, `
[log]
level = "debug"

[store]
path = "/tmp/q.db"

[game]
srs = false
lives = true
max-lives = 5
mastery-threshold = 3
question-timeout = 0
shuffle = true

[scoring]
base-points = 10
streak-bonus-rate = 0.1

[inventory]
FIFTY_FIFTY = 4
SKIP = 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/q.db", cfg.DBPath)
	assert.False(t, cfg.Game.SRS)
	assert.True(t, cfg.Game.SpeedScoring, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Game.MaxLives)
	assert.Equal(t, 3, cfg.Game.MasteryThreshold)
	assert.Equal(t, 0, cfg.Game.QuestionTimeoutSec)
	assert.True(t, cfg.Game.Shuffle)
	assert.Equal(t, 10, cfg.Scoring.BasePoints)
	assert.Equal(t, 0.1, cfg.Scoring.StreakBonusRate)
	assert.Equal(t, int64(scoring.ResponseCeilingMs), cfg.Scoring.ResponseCeilingMs)

	inv, err := cfg.PowerUpInventory()
	require.NoError(t, err)
	assert.Equal(t, map[powerup.Type]int{powerup.FiftyFifty: 4, powerup.Skip: 0}, inv)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"info\"\n")
	t.Setenv("QUIZRUSH_LOG_LEVEL", "ERROR")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.LogLevel)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("QUIZRUSH_LOG_LEVEL", "")
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", "[game\n"},
		{"unknown key", "[game]\nturbo = true\n"},
		{"lives without max", "[game]\nlives = true\nmax-lives = 0\n"},
		{"negative requeues", "[game]\nmax-requeues = -1\n"},
		{"zero requeues", "[game]\nmax-requeues = 0\n"},
		{"zero mastery threshold", "[game]\nmastery-threshold = 0\n"},
		{"zero base points", "[scoring]\nbase-points = 0\n"},
		{"bad log level", "[log]\nlevel = \"loud\"\n"},
		{"unknown power-up", "[inventory]\nTELEPORT = 1\n"},
		{"negative inventory", "[inventory]\nSKIP = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLivesOffAllowsZeroMax(t *testing.T) {
	t.Setenv("QUIZRUSH_LOG_LEVEL", "")
	cfg, err := Load(writeConfig(t, "[game]\nlives = false\nmax-lives = 0\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Game.Lives)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{LogLevel: tt.level}.SlogLevel(), tt.level)
	}
}

func TestSessionConfig(t *testing.T) {
	qs := []content.Question{{ID: "q1", Options: []content.Option{{ID: "a"}}, CorrectOptionID: "a"}}
	cfg := Default()
	cfg.Game.Lives = false

	sc, err := cfg.SessionConfig(qs, 77)
	require.NoError(t, err)
	assert.Equal(t, qs, sc.Questions)
	assert.True(t, sc.SRSEnabled)
	assert.False(t, sc.LivesEnabled)
	assert.Equal(t, uint64(77), sc.Seed)
	assert.Nil(t, sc.InitialPowerUps)
	assert.Equal(t, scoring.DefaultParams(), sc.Scoring)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("QUIZRUSH_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "quizrush", "config.toml"), DefaultConfigPath())

	t.Setenv("QUIZRUSH_CONFIG", "/etc/quizrush.toml")
	assert.Equal(t, "/etc/quizrush.toml", DefaultConfigPath())
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	wrote, err := WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, wrote)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	wrote, err = WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, wrote, "existing file is left alone")
}

func TestFile_AppliesBack(t *testing.T) {
	want := Default()
	want.Game.MaxLives = 7
	want.Inventory = map[string]int{"SKIP": 4}

	got := Default()
	want.File().Apply(&got)
	assert.Equal(t, want, got)
}
