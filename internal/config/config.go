// Package config loads quizrush settings from the TOML config file and the
// environment, and turns them into session configs.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/powerup"
	"github.com/abhisek/quizrush/internal/scoring"
	"github.com/abhisek/quizrush/internal/session"
	"github.com/abhisek/quizrush/internal/spacedrep"
)

// Config holds the resolved settings.
type Config struct {
	LogLevel  string         `validate:"oneof=debug info warn error"`
	DBPath    string         // empty means the default location
	Game      GameConfig
	Scoring   ScoringConfig
	Inventory map[string]int `validate:"dive,keys,oneof=FIFTY_FIFTY FREEZE_TIMER STREAK_SHIELD SKIP,endkeys,gte=0,lte=99"`
}

// GameConfig holds session settings.
type GameConfig struct {
	SRS                bool
	SpeedScoring       bool
	PowerUps           bool
	Lives              bool
	MaxLives           int `validate:"required_if=Lives true,gte=0,lte=99"`
	MasteryThreshold   int `validate:"gte=1,lte=10"`
	MaxRequeues        int `validate:"gte=1,lte=20"`
	QuestionTimeoutSec int `validate:"gte=0,lte=3600"`
	Shuffle            bool
}

// ScoringConfig holds the scoring curve.
type ScoringConfig struct {
	BasePoints        int     `validate:"gt=0"`
	MaxSpeedBonus     int     `validate:"gte=0"`
	ResponseCeilingMs int64   `validate:"gt=0"`
	StreakCap         int     `validate:"gte=0"`
	StreakBonusRate   float64 `validate:"gte=0,lte=1"`
}

// Default returns the built-in settings.
func Default() Config {
	params := scoring.DefaultParams()
	return Config{
		LogLevel: "warn",
		Game: GameConfig{
			SRS:                true,
			SpeedScoring:       true,
			PowerUps:           true,
			Lives:              true,
			MaxLives:           session.DefaultMaxLives,
			MasteryThreshold:   spacedrep.DefaultMasteryThreshold,
			MaxRequeues:        spacedrep.DefaultMaxRequeues,
			QuestionTimeoutSec: 20,
		},
		Scoring: ScoringConfig{
			BasePoints:        params.BasePoints,
			MaxSpeedBonus:     params.MaxSpeedBonus,
			ResponseCeilingMs: params.ResponseCeilingMs,
			StreakCap:         params.StreakCap,
			StreakBonusRate:   params.StreakBonusRate,
		},
	}
}

// Load resolves settings: defaults, then the file at path, then
// QUIZRUSH_* environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	fc, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	fc.Apply(&cfg)
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("QUIZRUSH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	validateOnce.Do(func() { validate = validator.New() })
	c.LogLevel = strings.ToLower(c.LogLevel)
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel parses the log level (case-insensitive). Unknown levels map to
// warn.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ScoringParams converts the scoring section.
func (c Config) ScoringParams() scoring.Params {
	return scoring.Params{
		BasePoints:        c.Scoring.BasePoints,
		MaxSpeedBonus:     c.Scoring.MaxSpeedBonus,
		ResponseCeilingMs: c.Scoring.ResponseCeilingMs,
		StreakCap:         c.Scoring.StreakCap,
		StreakBonusRate:   c.Scoring.StreakBonusRate,
	}
}

// PowerUpInventory converts the inventory section. A nil result means the
// default inventory.
func (c Config) PowerUpInventory() (map[powerup.Type]int, error) {
	if c.Inventory == nil {
		return nil, nil
	}
	out := make(map[powerup.Type]int, len(c.Inventory))
	for name, n := range c.Inventory {
		t, err := powerup.ParseType(name)
		if err != nil {
			return nil, err
		}
		out[t] = n
	}
	return out, nil
}

// SessionConfig builds the session config for a deck's questions.
func (c Config) SessionConfig(questions []content.Question, seed uint64) (session.Config, error) {
	inv, err := c.PowerUpInventory()
	if err != nil {
		return session.Config{}, err
	}
	return session.Config{
		Questions:           questions,
		SRSEnabled:          c.Game.SRS,
		SpeedScoringEnabled: c.Game.SpeedScoring,
		PowerUpsEnabled:     c.Game.PowerUps,
		LivesEnabled:        c.Game.Lives,
		MaxLives:            c.Game.MaxLives,
		MasteryThreshold:    c.Game.MasteryThreshold,
		MaxRequeues:         c.Game.MaxRequeues,
		InitialPowerUps:     inv,
		Seed:                seed,
		Scoring:             c.ScoringParams(),
	}, nil
}
