package play

import (
	"time"

	"github.com/abhisek/quizrush/internal/gems"
	"github.com/abhisek/quizrush/internal/session"
)

// tickInterval is how often the screen feeds elapsed time to the machine.
const tickInterval = 100 * time.Millisecond

// tickMsg carries the wall-clock time of a timer tick.
type tickMsg time.Time

// finishedMsg is sent once a terminal session has been persisted.
type finishedMsg struct {
	Outcome Outcome
}

// Outcome is what the persistence step produced for a finished session.
type Outcome struct {
	SessionID string
	Status    session.Status
	Result    *session.GameResult // nil when abandoned
	Score     int
	BestScore int
	Gems      []gems.GemAward
	Recorded  string // replay log path, empty if not recorded
	Errs      []error
}
