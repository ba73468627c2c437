package simulation

import "github.com/vytor/examprep/internal/models"

// Event is an input to Reduce.
type Event interface{ isEvent() }

type (
	// Initialize discards the current state and loads the session from
	// scratch, restoring stored progress in training mode.
	Initialize struct{}

	// Loaded delivers the result of a FetchQuestions effect. Results from
	// an older generation are discarded.
	Loaded struct {
		Generation uint64
		Questions  []models.Question
		Record     *models.ProgressRecord
	}

	SelectAnswer       struct{ Option int }
	SubmitAnswer       struct{}
	NextQuestion       struct{}
	PreviousQuestion   struct{}
	NavigateToQuestion struct{ Index int }
	ToggleExplanation  struct{}
	ToggleQuestionFlag struct{ Index int }
	Restart            struct{}
	Reset              struct{}

	// Tick is one timer interval elapsing for timer epoch TimerID.
	Tick struct{ TimerID uint64 }
)

func (Initialize) isEvent()         {}
func (Loaded) isEvent()             {}
func (SelectAnswer) isEvent()       {}
func (SubmitAnswer) isEvent()       {}
func (NextQuestion) isEvent()       {}
func (PreviousQuestion) isEvent()   {}
func (NavigateToQuestion) isEvent() {}
func (ToggleExplanation) isEvent()  {}
func (ToggleQuestionFlag) isEvent() {}
func (Restart) isEvent()            {}
func (Reset) isEvent()              {}
func (Tick) isEvent()               {}

// Effect is a side effect requested by Reduce. Session executes them in
// order.
type Effect interface{ isEffect() }

type (
	FetchQuestions struct {
		Generation uint64
		Restore    bool
	}

	StartTimer struct{ TimerID uint64 }
	StopTimer  struct{}

	LogAnswer struct {
		Topic      string
		QuestionID models.QuestionID
		Correct    bool
	}

	LogCompletion struct {
		Topic           string
		ScorePercentage int
		Correct         int
		Answered        int
	}

	SaveProgress struct{ Record models.ProgressRecord }

	SaveSetProgress struct {
		Type       models.QuestionType
		Difficulty models.Difficulty
		SetNumber  int
		Summary    models.SetProgress
	}

	SaveQuickProgress struct {
		Type    models.QuestionType
		Summary models.SetProgress
	}

	DeleteProgress struct{}
)

func (FetchQuestions) isEffect()    {}
func (StartTimer) isEffect()        {}
func (StopTimer) isEffect()         {}
func (LogAnswer) isEffect()         {}
func (LogCompletion) isEffect()     {}
func (SaveProgress) isEffect()      {}
func (SaveSetProgress) isEffect()   {}
func (SaveQuickProgress) isEffect() {}
func (DeleteProgress) isEffect()    {}
