package progress

import (
	"fmt"

	"github.com/vytor/examprep/internal/models"
)

// ProgressKey is where a session's resumable Progress Record lives.
func ProgressKey(sessionID string) string {
	return "simulation_progress_" + sessionID
}

// SetProgressKey is where the summary of a numbered question set lives.
func SetProgressKey(qType models.QuestionType, difficulty models.Difficulty, setNumber int) string {
	return fmt.Sprintf("set_progress_%s_%s_%d", qType, difficulty, setNumber)
}

// QuickPracticeKey is where the summary of a quick-practice run of one type lives.
func QuickPracticeKey(qType models.QuestionType) string {
	return "quick_practice_progress_" + string(qType)
}
