package mastery

// Step is how far one check moves a word's mastery level.
const Step = 1

// UpdateMastery returns the new level for wordID after a flashcard or
// spelling check. Correct recalls raise the level by Step; misses lower
// it, never below zero.
func UpdateMastery(wordID string, isCorrect bool, currentLevel int) int {
	if currentLevel < 0 {
		currentLevel = 0
	}
	if isCorrect {
		return currentLevel + Step
	}
	if currentLevel < Step {
		return 0
	}
	return currentLevel - Step
}

// NeedsReview reports whether a known word is still below threshold.
// Words the learner has not marked known are never due for review.
func NeedsReview(known bool, level, threshold int) bool {
	return known && level < threshold
}
