package models

import "time"

const (
	ActivityCorrect = "correct"
	ActivityWrong   = "wrong"
)

// ActivityEntry is one append-only history record: either a single answer
// submission or a session completion.
type ActivityEntry struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	Topic          string     `json:"topic"`
	QuestionID     QuestionID `json:"questionId,omitempty"`
	Status         string     `json:"status"`
	IsCorrect      bool       `json:"isCorrect"`
	IsCompleted    bool       `json:"isCompleted"`
	Score          *int       `json:"score,omitempty"`
	CorrectAnswers *int       `json:"correctAnswers,omitempty"`
	TotalAnswered  *int       `json:"totalAnswered,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NewAnswerEntry builds the record written for one submitted answer.
func NewAnswerEntry(topic string, questionID QuestionID, correct bool, at time.Time) ActivityEntry {
	status := ActivityWrong
	if correct {
		status = ActivityCorrect
	}
	return ActivityEntry{
		Date:       at.Format("2006-01-02"),
		Time:       at.Format("15:04:05"),
		Topic:      topic,
		QuestionID: questionID,
		Status:     status,
		IsCorrect:  correct,
		CreatedAt:  at,
	}
}

// NewCompletionEntry builds the record written when a session finishes.
func NewCompletionEntry(topic string, scorePercentage, correct, total int, at time.Time) ActivityEntry {
	return ActivityEntry{
		Date:           at.Format("2006-01-02"),
		Time:           at.Format("15:04:05"),
		Topic:          topic,
		Status:         ActivityCorrect,
		IsCorrect:      true,
		IsCompleted:    true,
		Score:          &scorePercentage,
		CorrectAnswers: &correct,
		TotalAnswered:  &total,
		CreatedAt:      at,
	}
}

// ActivityFilter narrows an activity history listing.
type ActivityFilter struct {
	Topic         string
	Status        string
	CompletedOnly bool
	Since         *time.Time
	Limit         int
	Offset        int
}
