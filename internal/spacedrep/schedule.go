package spacedrep

// CorrectSpacing is the number of question slots a correctly answered item
// is pushed back, indexed by its consecutive-correct count minus one.
// Beyond the table the last gap keeps doubling.
var CorrectSpacing = []int{3, 6, 12, 24}

// LapseSpacing is the gap after an incorrect answer.
const LapseSpacing = 2

// DefaultMasteryThreshold is the consecutive-correct count that retires an item.
const DefaultMasteryThreshold = 2

// DefaultMaxRequeues caps how often a single item is reinserted.
const DefaultMaxRequeues = 3

// SpacingFactor returns the gap for an item with the given consecutive
// correct count (1-based).
func SpacingFactor(consecutiveCorrect int) int {
	if consecutiveCorrect <= 0 {
		return LapseSpacing
	}
	if consecutiveCorrect <= len(CorrectSpacing) {
		return CorrectSpacing[consecutiveCorrect-1]
	}
	gap := CorrectSpacing[len(CorrectSpacing)-1]
	for i := len(CorrectSpacing); i < consecutiveCorrect; i++ {
		gap *= 2
	}
	return gap
}
