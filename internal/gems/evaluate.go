package gems

import (
	"fmt"
	"time"

	"github.com/abhisek/quizrush/internal/session"
)

// Evaluate computes the gems a completed session earned: one per streak
// milestone, one per missed question that was later answered correctly, a
// mastery gem when every question was mastered, and a session gem when the
// queue was cleared.
func Evaluate(sessionID string, res session.GameResult, now time.Time) []GemAward {
	var awards []GemAward

	for _, n := range StreakMilestones(res.Answers) {
		awards = append(awards, GemAward{
			Type:      GemStreak,
			Rarity:    StreakRarity(n),
			SessionID: sessionID,
			Reason:    fmt.Sprintf("%d correct in a row!", n),
			AwardedAt: now,
		})
	}

	for _, w := range res.WeakItems {
		if !recovered(res.Answers, w) {
			continue
		}
		awards = append(awards, GemAward{
			Type:       GemRecovery,
			Rarity:     RecoveryRarity(w.IncorrectCount),
			QuestionID: w.QuestionID,
			SessionID:  sessionID,
			Reason:     fmt.Sprintf("Recovered %s after %d %s", w.QuestionID, w.IncorrectCount, plural(w.IncorrectCount, "miss", "misses")),
			AwardedAt:  now,
		})
	}

	if res.Outcome != session.OutcomeCleared {
		return awards
	}

	if res.MasteryPercentage >= 100 {
		n := uniqueQuestions(res.Answers)
		awards = append(awards, GemAward{
			Type:      GemMastery,
			Rarity:    MasteryRarity(n),
			SessionID: sessionID,
			Reason:    fmt.Sprintf("Mastered all %d %s", n, plural(n, "question", "questions")),
			AwardedAt: now,
		})
	}

	awards = append(awards, GemAward{
		Type:      GemSession,
		Rarity:    SessionRarity(res.Accuracy / 100),
		SessionID: sessionID,
		Reason:    fmt.Sprintf("Session complete (%.0f%% accuracy)", res.Accuracy),
		AwardedAt: now,
	})
	return awards
}

// recovered reports whether the question was answered correctly after its
// last miss.
func recovered(answers []session.GameAnswer, w session.WeakGameItem) bool {
	for _, a := range answers {
		if a.QuestionID == w.QuestionID && a.Correct && a.QuestionIndex > w.LastIncorrectIndex {
			return true
		}
	}
	return false
}

func uniqueQuestions(answers []session.GameAnswer) int {
	seen := make(map[string]bool)
	for _, a := range answers {
		seen[a.QuestionID] = true
	}
	return len(seen)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
