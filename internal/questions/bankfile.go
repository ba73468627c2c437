package questions

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vytor/examprep/internal/models"
)

// FileDefaults fill fields a bank file leaves out.
type FileDefaults struct {
	Type       models.QuestionType
	Difficulty models.Difficulty
}

// ParseBankFile decodes a question bank file. Both a bare JSON array and
// an object with a "questions" array are accepted. Every question is
// validated after defaults are applied.
func ParseBankFile(data []byte, defaults FileDefaults) ([]models.Question, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty bank file")
	}

	var qs []models.Question
	if data[0] == '[' {
		if err := json.Unmarshal(data, &qs); err != nil {
			return nil, fmt.Errorf("decode question array: %w", err)
		}
	} else {
		var doc struct {
			Questions []models.Question `json:"questions"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode bank document: %w", err)
		}
		qs = doc.Questions
	}

	seen := make(map[models.QuestionID]bool, len(qs))
	for i := range qs {
		q := &qs[i]
		if q.Type == "" {
			q.Type = defaults.Type
		}
		if q.Difficulty == "" {
			q.Difficulty = defaults.Difficulty
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if !q.Type.Valid() {
			return nil, fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question %s appears twice", q.ID)
		}
		seen[q.ID] = true
	}
	return qs, nil
}
