package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// QuestionType is the section of the exam a question belongs to.
type QuestionType string

const (
	TypeSentenceCompletion   QuestionType = "sentence-completion"
	TypeRestatement          QuestionType = "restatement"
	TypeVocabulary           QuestionType = "vocabulary"
	TypeReadingComprehension QuestionType = "reading-comprehension"
)

// QuestionTypes lists every concrete type in exam order.
var QuestionTypes = []QuestionType{
	TypeSentenceCompletion,
	TypeRestatement,
	TypeVocabulary,
	TypeReadingComprehension,
}

func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Difficulty is the categorical difficulty label of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DifficultyMixed is a selector only. It never appears on a stored question.
	DifficultyMixed Difficulty = "mixed"
)

// Difficulties lists the levels a stored question can carry.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	return slices.Contains(Difficulties, d)
}

// QuestionID identifies a question within its bank. Banks use both numeric
// and string identifiers, so JSON numbers and strings are accepted.
type QuestionID string

func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id must be a string or number: %w", err)
	}
	*id = QuestionID(n.String())
	return nil
}

// Question is one read-only quiz item.
type Question struct {
	ID            QuestionID        `json:"id"`
	Type          QuestionType      `json:"type"`
	Prompt        string            `json:"question"`
	Options       []string          `json:"options"`
	CorrectAnswer int               `json:"correctAnswer"`
	Explanation   string            `json:"explanation,omitempty"`
	Passage       string            `json:"passage,omitempty"`
	PassageTitle  string            `json:"passageTitle,omitempty"`
	Difficulty    Difficulty        `json:"difficulty"`
	TopicID       *int              `json:"topicId,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Validate checks the structural invariants of a question.
func (q Question) Validate() error {
	if strings.TrimSpace(string(q.ID)) == "" {
		return fmt.Errorf("question has no id")
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("question %s has no options", q.ID)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("question %s: correct answer %d out of range [0,%d)", q.ID, q.CorrectAnswer, len(q.Options))
	}
	if q.Difficulty != "" && !q.Difficulty.Valid() {
		return fmt.Errorf("question %s: unknown difficulty %q", q.ID, q.Difficulty)
	}
	return nil
}

// IsCorrect reports whether option answers q correctly.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}

// QuestionFilter selects questions from a bank. Zero values match everything.
type QuestionFilter struct {
	Type       QuestionType
	Difficulty Difficulty
	Limit      int
	Offset     int
}
