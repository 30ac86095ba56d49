// Package replay records a session's accepted events together with the
// settings it was started with, so the session can be re-executed later
// and checked against its original result.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/powerup"
	"github.com/abhisek/quizrush/internal/scoring"
	"github.com/abhisek/quizrush/internal/session"
)

// Version is the log format version written by this package.
const Version = 1

var (
	// ErrUnsupportedVersion is returned when decoding a log written by an
	// incompatible version.
	ErrUnsupportedVersion = errors.New("unsupported replay log version")

	// ErrDeckMismatch is returned when the deck supplied for a replay does
	// not contain the recorded questions.
	ErrDeckMismatch = errors.New("deck does not match replay log")
)

// Settings are the non-question parts of a session.Config.
type Settings struct {
	SRSEnabled          bool           `cbor:"srs_enabled"`
	SpeedScoringEnabled bool           `cbor:"speed_scoring_enabled"`
	PowerUpsEnabled     bool           `cbor:"power_ups_enabled"`
	LivesEnabled        bool           `cbor:"lives_enabled"`
	MaxLives            int            `cbor:"max_lives"`
	MasteryThreshold    int            `cbor:"mastery_threshold"`
	MaxRequeues         int            `cbor:"max_requeues"`
	InitialPowerUps     map[string]int `cbor:"initial_power_ups,omitempty"`
	Scoring             scoring.Params `cbor:"scoring"`
}

// Log is a recorded session.
type Log struct {
	Version     int             `cbor:"version"`
	SessionID   string          `cbor:"session_id"`
	DeckID      string          `cbor:"deck_id"`
	Seed        uint64          `cbor:"seed"`
	RecordedAt  int64           `cbor:"recorded_at"` // unix seconds
	Settings    Settings        `cbor:"settings"`
	QuestionIDs []string        `cbor:"question_ids"`
	Events      []session.Event `cbor:"events"`
}

// Recorded returns the time the log was written.
func (l *Log) Recorded() time.Time {
	return time.Unix(l.RecordedAt, 0)
}

// NewLog captures the config and events of m.
func NewLog(sessionID, deckID string, m *session.Machine) *Log {
	cfg := m.Config()
	ids := make([]string, len(cfg.Questions))
	for i, q := range cfg.Questions {
		ids[i] = q.ID
	}
	return &Log{
		Version:     Version,
		SessionID:   sessionID,
		DeckID:      deckID,
		Seed:        cfg.Seed,
		RecordedAt:  time.Now().Unix(),
		Settings:    SettingsFrom(cfg),
		QuestionIDs: ids,
		Events:      m.Events(),
	}
}

// SettingsFrom extracts the settings of cfg.
func SettingsFrom(cfg session.Config) Settings {
	s := Settings{
		SRSEnabled:          cfg.SRSEnabled,
		SpeedScoringEnabled: cfg.SpeedScoringEnabled,
		PowerUpsEnabled:     cfg.PowerUpsEnabled,
		LivesEnabled:        cfg.LivesEnabled,
		MaxLives:            cfg.MaxLives,
		MasteryThreshold:    cfg.MasteryThreshold,
		MaxRequeues:         cfg.MaxRequeues,
		Scoring:             cfg.Scoring,
	}
	if cfg.InitialPowerUps != nil {
		s.InitialPowerUps = make(map[string]int, len(cfg.InitialPowerUps))
		for t, n := range cfg.InitialPowerUps {
			s.InitialPowerUps[string(t)] = n
		}
	}
	return s
}

// Config rebuilds the session config of the log from a deck's questions.
// Questions are taken in recorded order; extra deck questions are ignored.
func (l *Log) Config(questions []content.Question) (session.Config, error) {
	byID := make(map[string]content.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]content.Question, 0, len(l.QuestionIDs))
	for _, id := range l.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			return session.Config{}, fmt.Errorf("%w: missing question %q", ErrDeckMismatch, id)
		}
		ordered = append(ordered, q)
	}

	s := l.Settings
	cfg := session.Config{
		Questions:           ordered,
		SRSEnabled:          s.SRSEnabled,
		SpeedScoringEnabled: s.SpeedScoringEnabled,
		PowerUpsEnabled:     s.PowerUpsEnabled,
		LivesEnabled:        s.LivesEnabled,
		MaxLives:            s.MaxLives,
		MasteryThreshold:    s.MasteryThreshold,
		MaxRequeues:         s.MaxRequeues,
		Seed:                l.Seed,
		Scoring:             s.Scoring,
	}
	if s.InitialPowerUps != nil {
		cfg.InitialPowerUps = make(map[powerup.Type]int, len(s.InitialPowerUps))
		for name, n := range s.InitialPowerUps {
			t, err := powerup.ParseType(name)
			if err != nil {
				return session.Config{}, fmt.Errorf("replay settings: %w", err)
			}
			cfg.InitialPowerUps[t] = n
		}
	}
	return cfg, nil
}

// Run starts a fresh machine with cfg and applies events in order.
func Run(cfg session.Config, events []session.Event) (*session.Machine, error) {
	m := session.New()
	if err := m.Start(cfg); err != nil {
		return nil, err
	}
	for i, e := range events {
		if err := session.Apply(m, e); err != nil {
			return m, fmt.Errorf("replay event %d (%s): %w", i, e.Kind, err)
		}
	}
	return m, nil
}
