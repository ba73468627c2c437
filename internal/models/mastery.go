package models

import "time"

// WordMastery tracks how well a vocabulary word is known.
type WordMastery struct {
	WordID        string    `json:"wordId"`
	Level         int       `json:"level"`
	Known         bool      `json:"known"`
	TimesChecked  int       `json:"timesChecked"`
	TimesCorrect  int       `json:"timesCorrect"`
	LastCheckedBy string    `json:"lastCheckedBy,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Sources of a mastery check.
const (
	CheckFlashcard = "flashcard"
	CheckSpelling  = "spelling"
)
