package content

// Option is a single answer choice of a question.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Tags classify a question for reporting and filtering.
type Tags struct {
	Level  string   `json:"level,omitempty" yaml:"level,omitempty"`
	Skills []string `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// Question is an immutable multiple-choice item supplied by a deck.
// The session engine never mutates a Question.
type Question struct {
	ID              string   `json:"id" yaml:"id"`
	Content         string   `json:"content" yaml:"content"`
	Options         []Option `json:"options" yaml:"options"`
	CorrectOptionID string   `json:"correct_option_id" yaml:"correct_option_id"`
	Tags            Tags     `json:"tags" yaml:"tags"`
	Explanation     string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// IsCorrect reports whether optionID is the correct option. An empty
// option id (a timeout) is never correct.
func (q Question) IsCorrect(optionID string) bool {
	return optionID != "" && optionID == q.CorrectOptionID
}

// HasOption reports whether the question offers an option with the given id.
func (q Question) HasOption(optionID string) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// IncorrectOptionIDs returns the ids of all distractors in display order.
func (q Question) IncorrectOptionIDs() []string {
	ids := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o.ID != q.CorrectOptionID {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// CorrectOption returns the correct option, if present.
func (q Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.ID == q.CorrectOptionID {
			return o, true
		}
	}
	return Option{}, false
}
