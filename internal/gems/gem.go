package gems

import "time"

// GemAward represents a single gem earned.
type GemAward struct {
	Type       GemType
	Rarity     Rarity
	QuestionID string // recovery gems only
	SessionID  string
	Reason     string // human-readable reason, e.g. "10 correct in a row!"
	AwardedAt  time.Time
}
