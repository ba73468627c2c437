package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/repository"
)

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new ActivityRepository implementation
func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(ctx context.Context, e models.ActivityEntry) error {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	log.Debug("appending activity: id=%s, topic=%s, status=%s, completed=%t", e.ID, e.Topic, e.Status, e.IsCompleted)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO activity_log (
    id, entry_date, entry_time, topic, question_id, status, is_correct, is_completed,
    score, correct_answers, total_answered, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.Date, e.Time, e.Topic, string(e.QuestionID), e.Status, e.IsCorrect, e.IsCompleted,
		nullableInt(e.Score), nullableInt(e.CorrectAnswers), nullableInt(e.TotalAnswered), e.CreatedAt.UTC())
	if err != nil {
		log.Error("failed to append activity: %v", err)
	}
	return err
}

func applyActivityFilter(query squirrel.SelectBuilder, filter models.ActivityFilter) squirrel.SelectBuilder {
	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"topic": filter.Topic})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.CompletedOnly {
		query = query.Where(squirrel.Eq{"is_completed": true})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": filter.Since.UTC()})
	}
	return query
}

func (r *activityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")
	log.Debug("listing activity: topic=%s, status=%s, completed_only=%t", filter.Topic, filter.Status, filter.CompletedOnly)

	query := sqlBuilder.Select(
		"id", "entry_date", "entry_time", "topic", "question_id", "status", "is_correct",
		"is_completed", "score", "correct_answers", "total_answered", "created_at",
	).From("activity_log")
	query = applyActivityFilter(query, filter).OrderBy("created_at DESC", "rowid DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list activity: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var (
			e                             models.ActivityEntry
			questionID                    string
			score, correct, totalAnswered sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.Time, &e.Topic, &questionID, &e.Status, &e.IsCorrect,
			&e.IsCompleted, &score, &correct, &totalAnswered, &e.CreatedAt); err != nil {
			log.Error("failed to scan activity row: %v", err)
			return nil, err
		}
		e.QuestionID = models.QuestionID(questionID)
		e.Score = intPtr(score)
		e.CorrectAnswers = intPtr(correct)
		e.TotalAnswered = intPtr(totalAnswered)
		entries = append(entries, e)
	}
	log.Debug("found %d activity entries", len(entries))
	return entries, rows.Err()
}

func (r *activityRepository) Count(ctx context.Context, filter models.ActivityFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")

	stmt, args, err := applyActivityFilter(sqlBuilder.Select("COUNT(*)").From("activity_log"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	var count int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		log.Error("failed to count activity: %v", err)
		return 0, err
	}
	return count, nil
}
