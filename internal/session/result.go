package session

import (
	"math"
	"sort"
)

// Outcome is why a session completed.
type Outcome string

const (
	OutcomeCleared Outcome = "cleared" // the queue ran out
	OutcomeLoss    Outcome = "loss"    // lives reached zero
)

// WeakGameItem summarizes a question the player missed at least once.
type WeakGameItem struct {
	QuestionID         string `json:"question_id"`
	IncorrectCount     int    `json:"incorrect_count"`
	LastIncorrectIndex int    `json:"last_incorrect_index"`
	Attempts           int    `json:"attempts"`
}

// GameResult is the end-of-session summary. It is produced once, when the
// session completes.
type GameResult struct {
	FinalScore        int            `json:"final_score"`
	Accuracy          float64        `json:"accuracy"` // percent, one decimal
	MaxStreak         int            `json:"max_streak"`
	TotalTimeMs       int64          `json:"total_time_ms"`
	WeakItems         []WeakGameItem `json:"weak_items"`
	MasteryPercentage float64        `json:"mastery_percentage"`
	Answers           []GameAnswer   `json:"answers"`
	Outcome           Outcome        `json:"outcome"`
	Skipped           int            `json:"skipped"`
	Answered          int            `json:"answered"`
	Correct           int            `json:"correct"`
}

// ResultStats carries the inputs to BuildResult that are not derivable from
// the history alone.
type ResultStats struct {
	MaxStreak       int
	TotalTimeMs     int64
	MasteredCount   int
	UniqueQuestions int
	Outcome         Outcome
	Skipped         int
}

// BuildResult folds a session history into its GameResult.
func BuildResult(history []GameAnswer, stats ResultStats) GameResult {
	answers := make([]GameAnswer, len(history))
	copy(answers, history)

	res := GameResult{
		MaxStreak:   stats.MaxStreak,
		TotalTimeMs: stats.TotalTimeMs,
		Answers:     answers,
		Outcome:     stats.Outcome,
		Skipped:     stats.Skipped,
		Answered:    len(history),
		WeakItems:   []WeakGameItem{},
	}

	weak := make(map[string]*WeakGameItem)
	attempts := make(map[string]int)
	var answerTime int64
	for _, a := range history {
		res.FinalScore += a.ScoreDelta
		answerTime += a.ElapsedMs
		attempts[a.QuestionID]++
		if a.Correct {
			res.Correct++
			continue
		}
		w, ok := weak[a.QuestionID]
		if !ok {
			w = &WeakGameItem{QuestionID: a.QuestionID}
			weak[a.QuestionID] = w
		}
		w.IncorrectCount++
		w.LastIncorrectIndex = a.QuestionIndex
	}
	if res.TotalTimeMs < answerTime {
		res.TotalTimeMs = answerTime
	}

	for id, w := range weak {
		w.Attempts = attempts[id]
		res.WeakItems = append(res.WeakItems, *w)
	}
	sort.Slice(res.WeakItems, func(i, j int) bool {
		a, b := res.WeakItems[i], res.WeakItems[j]
		if a.IncorrectCount != b.IncorrectCount {
			return a.IncorrectCount > b.IncorrectCount
		}
		return a.LastIncorrectIndex > b.LastIncorrectIndex
	})

	res.Accuracy = percent(res.Correct, res.Answered)
	res.MasteryPercentage = percent(stats.MasteredCount, stats.UniqueQuestions)
	return res
}

// percent returns n/d as a percentage rounded to one decimal, 0 when d is 0.
func percent(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return math.Round(float64(n)/float64(d)*1000) / 10
}
