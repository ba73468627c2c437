package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/repository"
)

type masteryRepository struct {
	db *sql.DB
}

// NewMasteryRepository creates a new MasteryRepository implementation
func NewMasteryRepository(db *sql.DB) repository.MasteryRepository {
	return &masteryRepository{db: db}
}

const masteryColumns = `word_id, level, known, times_checked, times_correct, last_checked_by, updated_at`

func scanMastery(row interface{ Scan(...any) error }) (models.WordMastery, error) {
	var m models.WordMastery
	err := row.Scan(&m.WordID, &m.Level, &m.Known, &m.TimesChecked, &m.TimesCorrect, &m.LastCheckedBy, &m.UpdatedAt)
	return m, err
}

func (r *masteryRepository) Get(ctx context.Context, wordID string) (*models.WordMastery, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("getting mastery: word_id=%s", wordID)

	m, err := scanMastery(r.db.QueryRowContext(ctx, `SELECT `+masteryColumns+` FROM word_mastery WHERE word_id = ?`, wordID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no mastery record yet: word_id=%s", wordID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get mastery: %v", err)
		return nil, err
	}
	return &m, nil
}

func (r *masteryRepository) Upsert(ctx context.Context, m models.WordMastery) error {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("upserting mastery: word_id=%s, level=%d, known=%t", m.WordID, m.Level, m.Known)

	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO word_mastery (`+masteryColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(word_id) DO UPDATE SET
    level = excluded.level,
    known = excluded.known,
    times_checked = excluded.times_checked,
    times_correct = excluded.times_correct,
    last_checked_by = excluded.last_checked_by,
    updated_at = excluded.updated_at
`, m.WordID, m.Level, m.Known, m.TimesChecked, m.TimesCorrect, m.LastCheckedBy, m.UpdatedAt.UTC())
	if err != nil {
		log.Error("failed to upsert mastery: %v", err)
	}
	return err
}

// NeedsReview lists known words whose level is still below threshold,
// weakest first.
func (r *masteryRepository) NeedsReview(ctx context.Context, threshold, limit int) ([]models.WordMastery, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("listing words needing review: threshold=%d, limit=%d", threshold, limit)

	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+masteryColumns+`
FROM word_mastery
WHERE known = 1 AND level < ?
ORDER BY level ASC, updated_at ASC
LIMIT ?
`, threshold, limit)
	if err != nil {
		log.Error("failed to query review words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.WordMastery
	for rows.Next() {
		m, err := scanMastery(rows)
		if err != nil {
			log.Error("failed to scan mastery row: %v", err)
			return nil, err
		}
		words = append(words, m)
	}
	return words, rows.Err()
}
