package gems

import "github.com/abhisek/quizrush/internal/session"

// BaseStreakThreshold is the first streak length that awards a gem.
const BaseStreakThreshold = 5

// NextStreakThreshold returns the next streak milestone above the current streak length.
func NextStreakThreshold(current int) int {
	thresholds := []int{5, 10, 15, 20}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, award every 5.
	return ((current / 5) + 1) * 5
}

// StreakMilestones replays a history and returns each streak milestone
// reached, in order. A milestone is awarded at most once per session, so
// after a reset the streak must climb past the highest milestone already
// reached. Shielded misses do not break the streak.
func StreakMilestones(history []session.GameAnswer) []int {
	var out []int
	streak, highest := 0, 0
	next := NextStreakThreshold(0)
	for _, a := range history {
		switch {
		case a.Correct:
			streak++
			if streak == next {
				out = append(out, streak)
				highest = streak
				next = NextStreakThreshold(highest)
			}
		case a.Shielded:
		default:
			streak = 0
		}
	}
	return out
}
