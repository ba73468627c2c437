package models

// ProgressRecord is the persisted snapshot needed to resume a training session.
//
// Answers is keyed by position in the current question ordering, Flags by
// question identifier. The two key spaces must not be mixed: positions are
// recycled on restart, identifiers are stable.
type ProgressRecord struct {
	CurrentQuestionIndex   int                 `json:"currentQuestionIndex"`
	UserAnswers            map[int]int         `json:"userAnswers"`
	QuestionFlags          map[QuestionID]bool `json:"questionFlags"`
	RemainingTime          int                 `json:"remainingTime"`
	IsTimerActive          bool                `json:"isTimerActive"`
	ExamMode               bool                `json:"examMode"`
	ShowAnswersImmediately bool                `json:"showAnswersImmediately"`
	AnsweredQuestionsCount int                 `json:"answeredQuestionsCount"`
	CorrectQuestionsCount  int                 `json:"correctQuestionsCount"`
	Score                  int                 `json:"score"`
	ProgressPercentage     int                 `json:"progressPercentage"`
	CurrentScorePercentage int                 `json:"currentScorePercentage"`
	TotalQuestions         int                 `json:"totalQuestions"`
}

// SetProgress is the coarse summary kept per numbered set and per
// quick-practice type.
type SetProgress struct {
	Completed         bool `json:"completed"`
	InProgress        bool `json:"inProgress"`
	Score             *int `json:"score,omitempty"`
	AnsweredQuestions int  `json:"answeredQuestions"`
	TotalQuestions    *int `json:"totalQuestions,omitempty"`
}
