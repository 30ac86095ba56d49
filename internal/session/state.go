package session

import (
	"fmt"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/powerup"
	"github.com/abhisek/quizrush/internal/scoring"
	"github.com/abhisek/quizrush/internal/spacedrep"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPaused     Status = "PAUSED"
	StatusCompleted  Status = "COMPLETED"
	StatusAbandoned  Status = "ABANDONED"
)

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// Default session settings.
const (
	DefaultMaxLives = 3
)

// Config is the immutable input of a session.
type Config struct {
	Questions []content.Question

	SRSEnabled          bool
	SpeedScoringEnabled bool
	PowerUpsEnabled     bool
	LivesEnabled        bool

	// MaxLives is required to be positive when LivesEnabled is set.
	MaxLives int

	// MasteryThreshold and MaxRequeues fall back to the spacedrep defaults
	// when zero.
	MasteryThreshold int
	MaxRequeues      int

	// InitialPowerUps overrides powerup.InitialPowerUps when non-nil.
	InitialPowerUps map[powerup.Type]int

	// Seed makes FIFTY_FIFTY's choice of hidden options reproducible.
	Seed uint64

	// Scoring overrides the scoring curve when non-zero.
	Scoring scoring.Params
}

// DefaultConfig returns a config with every feature enabled.
func DefaultConfig(questions []content.Question) Config {
	return Config{
		Questions:           questions,
		SRSEnabled:          true,
		SpeedScoringEnabled: true,
		PowerUpsEnabled:     true,
		LivesEnabled:        true,
		MaxLives:            DefaultMaxLives,
		MasteryThreshold:    spacedrep.DefaultMasteryThreshold,
		MaxRequeues:         spacedrep.DefaultMaxRequeues,
	}
}

// MaxHistory is the upper bound on answers a session with this config can
// record.
func (c Config) MaxHistory() int {
	requeues := c.MaxRequeues
	if requeues == 0 {
		requeues = spacedrep.DefaultMaxRequeues
	}
	return len(c.Questions) * (1 + requeues)
}

func (c Config) validate() error {
	if len(c.Questions) == 0 {
		return &InvalidConfigError{Reason: "no questions"}
	}
	if c.LivesEnabled && c.MaxLives <= 0 {
		return &InvalidConfigError{Reason: "max lives must be positive when lives are enabled"}
	}
	if c.MasteryThreshold < 0 {
		return &InvalidConfigError{Reason: "mastery threshold must not be negative"}
	}
	if c.MaxRequeues < 0 {
		return &InvalidConfigError{Reason: "max requeues must not be negative"}
	}
	seen := make(map[string]bool, len(c.Questions))
	for i, q := range c.Questions {
		if q.ID == "" {
			return &InvalidConfigError{Reason: fmt.Sprintf("question %d has no id", i)}
		}
		if seen[q.ID] {
			return &InvalidConfigError{Reason: fmt.Sprintf("duplicate question id %q", q.ID)}
		}
		seen[q.ID] = true
		if !q.HasOption(q.CorrectOptionID) {
			return &InvalidConfigError{Reason: fmt.Sprintf("question %q has no option %q", q.ID, q.CorrectOptionID)}
		}
	}
	return nil
}

// GameAnswer is one immutable entry of the session history.
type GameAnswer struct {
	QuestionID       string         `json:"question_id" cbor:"question_id"`
	SelectedOptionID string         `json:"selected_option_id" cbor:"selected_option_id"` // empty on timeout
	Correct          bool           `json:"correct" cbor:"correct"`
	ElapsedMs        int64          `json:"elapsed_ms" cbor:"elapsed_ms"`
	ScoreDelta       int            `json:"score_delta" cbor:"score_delta"`
	PowerUpsUsed     []powerup.Type `json:"power_ups_used,omitempty" cbor:"power_ups_used,omitempty"`
	QuestionIndex    int            `json:"question_index" cbor:"question_index"`
	Shielded         bool           `json:"shielded,omitempty" cbor:"shielded,omitempty"` // a STREAK_SHIELD absorbed this miss
}

// TimedOut reports whether the answer was a timeout.
func (a GameAnswer) TimedOut() bool {
	return a.SelectedOptionID == ""
}

// PlayerGameState is the mutable aggregate owned by one Machine.
type PlayerGameState struct {
	Status               Status
	CurrentQuestionIndex int
	Score                int
	Streak               int
	MaxStreak            int
	Lives                int
	History              []GameAnswer
	Queue                *spacedrep.Queue
	PowerUps             *powerup.Manager
	ElapsedSessionMs     int64
}
