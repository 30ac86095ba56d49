package session

import (
	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/powerup"
)

// ProgressIndicator is a read-only projection of the session state, safe to
// poll on every render.
type ProgressIndicator struct {
	CurrentIndex      int
	Total             int // questions served plus questions pending
	Remaining         int
	Score             int
	Streak            int
	Lives             int
	Status            Status
	ActivePowerUps    []powerup.Type
	PowerUps          []powerup.PowerUp
	QuestionElapsedMs int64
	ElapsedSessionMs  int64
}

// QuestionView is the current question as the player should see it, with
// options hidden by FIFTY_FIFTY removed.
type QuestionView struct {
	Index       int
	QuestionID  string
	Content     string
	Options     []content.Option
	HiddenCount int
	Tags        content.Tags
}
