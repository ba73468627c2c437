package simulation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/examprep/internal/questions"
)

// SessionID derives the session identifier from the criteria, so that
// re-entering the same route resumes the same session. Pre-supplied lists
// hash their question ids; criteria that select nothing get a random id.
func SessionID(c questions.Criteria) string {
	switch {
	case c.FullExam:
		return "full-exam"
	case len(c.Questions) > 0:
		ids := make([]string, len(c.Questions))
		for i, q := range c.Questions {
			ids[i] = string(q.ID)
		}
		return "custom-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(ids, ","))).String()
	case c.IsSet():
		return fmt.Sprintf("%s_%s_set%d", c.Type, c.Difficulty, c.SetNumber)
	case c.Type != "" && c.Difficulty != "":
		return fmt.Sprintf("%s_%s", c.Type, c.Difficulty)
	case c.Type != "":
		return fmt.Sprintf("quick_%s", c.Type)
	case c.Selection != nil && c.Selection.Type != "":
		return fmt.Sprintf("%s_%s", c.Selection.Type, c.Selection.Difficulty)
	default:
		return "practice-" + uuid.NewString()
	}
}
