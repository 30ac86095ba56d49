package spacedrep

// Item is the scheduling state of one question within a session.
type Item struct {
	QuestionID         string `json:"question_id"`
	DueIndex           int    `json:"due_index"`
	ConsecutiveCorrect int    `json:"consecutive_correct"`
	LastSeenIndex      int    `json:"last_seen_index"` // -1 until first served
	Requeues           int    `json:"requeues"`
	Mastered           bool   `json:"mastered"`
	Retired            bool   `json:"retired"`

	order int // position in the original question list, breaks due ties
	aim   int // index the last scheduling asked for; -1 after a skip
}

// Seen reports whether the item has been served at least once.
func (it *Item) Seen() bool {
	return it.LastSeenIndex >= 0
}

// Outcome describes what happened to an item after it was resolved.
type Outcome string

const (
	OutcomeRequeued Outcome = "requeued"
	OutcomeMastered Outcome = "mastered"
	OutcomeRetired  Outcome = "retired" // left the queue without mastery
	OutcomeSkipped  Outcome = "skipped"
)
