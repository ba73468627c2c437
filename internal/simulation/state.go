package simulation

import (
	"math"
	"time"

	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/questions"
)

// Mode carries the explicit mode signals of the caller, typically the
// practice and exam query flags.
type Mode struct {
	Practice bool `json:"practice,omitempty"`
	Exam     bool `json:"exam,omitempty"`
}

// ResolveMode decides whether a session is timed. A full-exam route is
// always timed; otherwise practice beats exam, and no signal means practice.
func ResolveMode(fullExam bool, m Mode) (examMode, showAnswersImmediately bool) {
	switch {
	case fullExam:
		return true, false
	case m.Practice:
		return false, true
	case m.Exam:
		return true, false
	default:
		return false, true
	}
}

// DefaultExamDuration is the countdown of a timed session.
const DefaultExamDuration = 150 * time.Minute

// Config fixes everything a session needs to (re)load itself.
type Config struct {
	SessionID    string
	Criteria     questions.Criteria
	Mode         Mode
	ExamDuration time.Duration
}

const (
	ReasonFinished = "finished"
	ReasonTimeout  = "timeout"
)

// State is the complete state of one session. Values handed out by Reduce
// are never mutated afterwards; every transition works on a copy.
//
// Answers is keyed by position in Questions, Flags by question identifier.
type State struct {
	SessionID              string                     `json:"sessionId"`
	Questions              []models.Question          `json:"questions"`
	CurrentIndex           int                        `json:"currentQuestionIndex"`
	Answers                map[int]int                `json:"userAnswers"`
	Flags                  map[models.QuestionID]bool `json:"questionFlags"`
	SelectedAnswer         *int                       `json:"selectedAnswerIndex"`
	Submitted              bool                       `json:"isAnswerSubmitted"`
	ShowExplanation        bool                       `json:"showExplanation"`
	Score                  int                        `json:"score"`
	AnsweredCount          int                        `json:"answeredQuestionsCount"`
	CorrectCount           int                        `json:"correctQuestionsCount"`
	ProgressPercentage     int                        `json:"progressPercentage"`
	ScorePercentage        int                        `json:"currentScorePercentage"`
	TotalQuestions         int                        `json:"totalQuestions"`
	RemainingTime          int                        `json:"remainingTime"`
	TimerActive            bool                       `json:"isTimerActive"`
	ExamMode               bool                       `json:"examMode"`
	ShowAnswersImmediately bool                       `json:"showAnswersImmediately"`
	Complete               bool                       `json:"simulationComplete"`
	CompletionReason       string                     `json:"completionReason,omitempty"`
	Loaded                 bool                       `json:"progressLoaded"`

	Config     Config `json:"-"`
	Generation uint64 `json:"-"`
	TimerID    uint64 `json:"-"`
}

// NewState returns the state of a session that has not loaded questions yet.
func NewState(cfg Config) State {
	if cfg.ExamDuration <= 0 {
		cfg.ExamDuration = DefaultExamDuration
	}
	exam, show := ResolveMode(cfg.Criteria.FullExam, cfg.Mode)
	return State{
		SessionID:              cfg.SessionID,
		Answers:                map[int]int{},
		Flags:                  map[models.QuestionID]bool{},
		RemainingTime:          int(cfg.ExamDuration / time.Second),
		ExamMode:               exam,
		ShowAnswersImmediately: show,
		Config:                 cfg,
	}
}

// CurrentQuestion returns the question at CurrentIndex, or nil when none
// is loaded.
func (s State) CurrentQuestion() *models.Question {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

func (s State) IsLast() bool {
	return s.TotalQuestions > 0 && s.CurrentIndex == s.TotalQuestions-1
}

// Record is the resumable snapshot of s.
func (s State) Record() models.ProgressRecord {
	answers := make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	flags := make(map[models.QuestionID]bool, len(s.Flags))
	for k, v := range s.Flags {
		flags[k] = v
	}
	return models.ProgressRecord{
		CurrentQuestionIndex:   s.CurrentIndex,
		UserAnswers:            answers,
		QuestionFlags:          flags,
		RemainingTime:          s.RemainingTime,
		IsTimerActive:          s.TimerActive,
		ExamMode:               s.ExamMode,
		ShowAnswersImmediately: s.ShowAnswersImmediately,
		AnsweredQuestionsCount: s.AnsweredCount,
		CorrectQuestionsCount:  s.CorrectCount,
		Score:                  s.Score,
		ProgressPercentage:     s.ProgressPercentage,
		CurrentScorePercentage: s.ScorePercentage,
		TotalQuestions:         s.TotalQuestions,
	}
}

// Summary is the set or quick-practice summary of s.
func (s State) Summary() models.SetProgress {
	total := s.TotalQuestions
	out := models.SetProgress{
		Completed:         s.Complete,
		InProgress:        !s.Complete,
		AnsweredQuestions: s.AnsweredCount,
		TotalQuestions:    &total,
	}
	if s.Complete {
		score := s.ScorePercentage
		out.Score = &score
	}
	return out
}

func (s State) clone() State {
	answers := make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	flags := make(map[models.QuestionID]bool, len(s.Flags))
	for k, v := range s.Flags {
		flags[k] = v
	}
	s.Answers = answers
	s.Flags = flags
	if s.SelectedAnswer != nil {
		sel := *s.SelectedAnswer
		s.SelectedAnswer = &sel
	}
	return s
}

// recount derives the answered count and both percentages.
func (s *State) recount() {
	s.AnsweredCount = len(s.Answers)
	s.ProgressPercentage = percent(s.AnsweredCount, s.TotalQuestions)
	s.ScorePercentage = percent(s.Score, s.TotalQuestions)
}

// moveTo shows position i, restoring what was recorded there.
func (s *State) moveTo(i int) {
	s.CurrentIndex = i
	if answer, ok := s.Answers[i]; ok {
		s.SelectedAnswer = &answer
		s.Submitted = true
		s.ShowExplanation = true
		return
	}
	s.SelectedAnswer = nil
	s.Submitted = false
	s.ShowExplanation = false
}

// overlay applies a stored record to a freshly loaded state. Ledger entries
// beyond the loaded questions are dropped and the score is recounted from
// what remains.
func (s *State) overlay(rec models.ProgressRecord) {
	for pos, option := range rec.UserAnswers {
		if pos >= 0 && pos < s.TotalQuestions {
			s.Answers[pos] = option
		}
	}
	for id, flagged := range rec.QuestionFlags {
		if flagged {
			s.Flags[id] = true
		}
	}
	s.Score = 0
	for pos, option := range s.Answers {
		if s.Questions[pos].IsCorrect(option) {
			s.Score++
		}
	}
	s.CorrectCount = s.Score
	if rec.RemainingTime > 0 {
		s.RemainingTime = rec.RemainingTime
	}

	idx := rec.CurrentQuestionIndex
	if idx >= s.TotalQuestions {
		idx = s.TotalQuestions - 1
	}
	if idx < 0 {
		idx = 0
	}
	s.CurrentIndex = idx
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}
