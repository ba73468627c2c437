package testutil

import (
	"context"
	"database/sql"
	"strconv"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/examprep/internal/db"
	"github.com/vytor/examprep/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// A single connection keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Questions builds n valid questions of the given type and difficulty with
// ids prefix-0 .. prefix-(n-1). The correct answer is always option 1.
func Questions(prefix string, qType models.QuestionType, difficulty models.Difficulty, n int) []models.Question {
	out := make([]models.Question, n)
	for i := range out {
		out[i] = models.Question{
			ID:            models.QuestionID(prefix + "-" + strconv.Itoa(i)),
			Type:          qType,
			Prompt:        "question " + strconv.Itoa(i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 1,
			Explanation:   "b is right",
			Difficulty:    difficulty,
		}
	}
	return out
}
