package questions

import "github.com/vytor/examprep/internal/models"

// Criteria selects the questions for one session. Fields are checked in
// priority order by Loader.Load: FullExam, Questions, Type without
// Difficulty, Type with Difficulty, then Selection.
type Criteria struct {
	FullExam   bool                `json:"fullExam,omitempty"`
	Questions  []models.Question   `json:"questions,omitempty"`
	Type       models.QuestionType `json:"type,omitempty"`
	Difficulty models.Difficulty   `json:"difficulty,omitempty"`
	Limit      int                 `json:"limit,omitempty"`
	SetNumber  int                 `json:"set,omitempty"`
	Start      *int                `json:"start,omitempty"`
	Selection  *Selection          `json:"selection,omitempty"`
}

// Selection is an explicit difficulty pick made before the session starts,
// for example from a difficulty chooser screen. Difficulty may be "mixed".
type Selection struct {
	Type       models.QuestionType `json:"type"`
	Difficulty models.Difficulty   `json:"difficulty"`
	Limit      int                 `json:"limit,omitempty"`
}

// IsSet reports whether the criteria address a numbered question set.
func (c Criteria) IsSet() bool {
	return !c.FullExam && len(c.Questions) == 0 && c.Type != "" && c.Difficulty != "" && c.SetNumber > 0 && c.Start != nil
}

// IsQuickPractice reports whether the criteria ask for a random sample of
// one type across all difficulties.
func (c Criteria) IsQuickPractice() bool {
	return !c.FullExam && len(c.Questions) == 0 && c.Type != "" && c.Difficulty == "" && c.Limit > 0
}

// Topic names the criteria for activity history.
func (c Criteria) Topic() string {
	switch {
	case c.FullExam:
		return "full-exam"
	case c.Type != "":
		return string(c.Type)
	case c.Selection != nil && c.Selection.Type != "":
		return string(c.Selection.Type)
	case len(c.Questions) > 0 && c.Questions[0].Type != "":
		return string(c.Questions[0].Type)
	default:
		return "practice"
	}
}

// ResolveDifficulty maps the "mixed" selector onto a concrete difficulty.
// Sentence completion and restatement banks are graded, so mixed means
// medium for them. For other types mixed means every difficulty, reported
// as ok=false.
func ResolveDifficulty(qType models.QuestionType, d models.Difficulty) (resolved models.Difficulty, ok bool) {
	if d != models.DifficultyMixed {
		return d, d != ""
	}
	switch qType {
	case models.TypeSentenceCompletion, models.TypeRestatement:
		return models.DifficultyMedium, true
	default:
		return "", false
	}
}
