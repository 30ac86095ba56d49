package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Every field is
// optional; nil means "keep the default".
type FileConfig struct {
	Log       LogFile        `toml:"log"`
	Store     StoreFile      `toml:"store"`
	Game      GameFile       `toml:"game"`
	Scoring   ScoringFile    `toml:"scoring"`
	Inventory map[string]int `toml:"inventory"`
}

// LogFile maps logging settings.
type LogFile struct {
	Level *string `toml:"level"`
}

// StoreFile maps result store settings.
type StoreFile struct {
	Path *string `toml:"path"`
}

// GameFile maps session settings.
type GameFile struct {
	SRS              *bool `toml:"srs"`
	SpeedScoring     *bool `toml:"speed-scoring"`
	PowerUps         *bool `toml:"power-ups"`
	Lives            *bool `toml:"lives"`
	MaxLives         *int  `toml:"max-lives"`
	MasteryThreshold *int  `toml:"mastery-threshold"`
	MaxRequeues      *int  `toml:"max-requeues"`
	QuestionTimeout  *int  `toml:"question-timeout"` // seconds, 0 disables
	Shuffle          *bool `toml:"shuffle"`
}

// ScoringFile maps the scoring curve.
type ScoringFile struct {
	BasePoints        *int     `toml:"base-points"`
	MaxSpeedBonus     *int     `toml:"max-speed-bonus"`
	ResponseCeilingMs *int64   `toml:"response-ceiling-ms"`
	StreakCap         *int     `toml:"streak-cap"`
	StreakBonusRate   *float64 `toml:"streak-bonus-rate"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var fc FileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return fc, nil
}

// Apply overlays the fields set in fc onto cfg.
func (fc FileConfig) Apply(cfg *Config) {
	setString(&cfg.LogLevel, fc.Log.Level)
	setString(&cfg.DBPath, fc.Store.Path)

	g := &cfg.Game
	setBool(&g.SRS, fc.Game.SRS)
	setBool(&g.SpeedScoring, fc.Game.SpeedScoring)
	setBool(&g.PowerUps, fc.Game.PowerUps)
	setBool(&g.Lives, fc.Game.Lives)
	setInt(&g.MaxLives, fc.Game.MaxLives)
	setInt(&g.MasteryThreshold, fc.Game.MasteryThreshold)
	setInt(&g.MaxRequeues, fc.Game.MaxRequeues)
	setInt(&g.QuestionTimeoutSec, fc.Game.QuestionTimeout)
	setBool(&g.Shuffle, fc.Game.Shuffle)

	s := &cfg.Scoring
	setInt(&s.BasePoints, fc.Scoring.BasePoints)
	setInt(&s.MaxSpeedBonus, fc.Scoring.MaxSpeedBonus)
	if fc.Scoring.ResponseCeilingMs != nil {
		s.ResponseCeilingMs = *fc.Scoring.ResponseCeilingMs
	}
	setInt(&s.StreakCap, fc.Scoring.StreakCap)
	if fc.Scoring.StreakBonusRate != nil {
		s.StreakBonusRate = *fc.Scoring.StreakBonusRate
	}

	if fc.Inventory != nil {
		cfg.Inventory = make(map[string]int, len(fc.Inventory))
		for k, v := range fc.Inventory {
			cfg.Inventory[k] = v
		}
	}
}

// File converts resolved settings back into a fully populated FileConfig.
func (c Config) File() FileConfig {
	g, sc := c.Game, c.Scoring
	fc := FileConfig{
		Log:   LogFile{Level: &c.LogLevel},
		Store: StoreFile{Path: &c.DBPath},
		Game: GameFile{
			SRS:              &g.SRS,
			SpeedScoring:     &g.SpeedScoring,
			PowerUps:         &g.PowerUps,
			Lives:            &g.Lives,
			MaxLives:         &g.MaxLives,
			MasteryThreshold: &g.MasteryThreshold,
			MaxRequeues:      &g.MaxRequeues,
			QuestionTimeout:  &g.QuestionTimeoutSec,
			Shuffle:          &g.Shuffle,
		},
		Scoring: ScoringFile{
			BasePoints:        &sc.BasePoints,
			MaxSpeedBonus:     &sc.MaxSpeedBonus,
			ResponseCeilingMs: &sc.ResponseCeilingMs,
			StreakCap:         &sc.StreakCap,
			StreakBonusRate:   &sc.StreakBonusRate,
		},
	}
	if c.Inventory != nil {
		fc.Inventory = make(map[string]int, len(c.Inventory))
		for k, v := range c.Inventory {
			fc.Inventory[k] = v
		}
	}
	return fc
}

// Encode writes fc as TOML.
func Encode(w io.Writer, fc FileConfig) error {
	if err := toml.NewEncoder(w).Encode(fc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// WriteDefault writes the default settings to path unless a file already
// exists there. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false, fmt.Errorf("failed to create config: %w", err)
	}
	fc := Default().File()
	fc.Store.Path = nil
	fc.Inventory = nil
	if err := Encode(f, fc); err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
