package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/examprep/internal/db"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func applyQuestionFilter(query squirrel.SelectBuilder, filter models.QuestionFilter) squirrel.SelectBuilder {
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": string(filter.Type)})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": string(filter.Difficulty)})
	}
	return query
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: type=%s, difficulty=%s, limit=%d, offset=%d", filter.Type, filter.Difficulty, filter.Limit, filter.Offset)

	query := sqlBuilder.Select(
		"bank_id", "type", "difficulty", "prompt", "options", "correct_answer",
		"explanation", "passage", "passage_title", "topic_id", "tags", "metadata",
	).From("questions")
	query = applyQuestionFilter(query, filter).OrderBy("position ASC", "rowid ASC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			// SQLite requires a LIMIT clause before OFFSET.
			query = query.Limit(uint64(1<<62 - 1))
		}
		query = query.Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var (
			q                     models.Question
			id, qType, difficulty string
			options, tags, meta   string
			topicID               sql.NullInt64
		)
		if err := rows.Scan(&id, &qType, &difficulty, &q.Prompt, &options, &q.CorrectAnswer,
			&q.Explanation, &q.Passage, &q.PassageTitle, &topicID, &tags, &meta); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		q.ID = models.QuestionID(id)
		q.Type = models.QuestionType(qType)
		q.Difficulty = models.Difficulty(difficulty)
		if topicID.Valid {
			t := int(topicID.Int64)
			q.TopicID = &t
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("decode options of question %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of question %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(meta), &q.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata of question %s: %w", id, err)
		}
		questions = append(questions, q)
	}
	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}

func (r *questionRepository) Count(ctx context.Context, filter models.QuestionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	stmt, args, err := applyQuestionFilter(sqlBuilder.Select("COUNT(*)").From("questions"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		log.Error("failed to count questions: %v", err)
		return 0, err
	}
	return count, nil
}

// UpsertBatch stores questions in the given order. New questions are
// appended after the last stored position of their type, so batches loaded
// one after another keep file order for set pagination. Questions already
// stored keep their position.
func (r *questionRepository) UpsertBatch(ctx context.Context, questions []models.Question) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("upserting %d questions", len(questions))

	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return 0, err
		}
		if !q.Type.Valid() {
			return 0, fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
		}
	}

	err := db.Tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO questions (
    bank_id, type, difficulty, position, prompt, options, correct_answer,
    explanation, passage, passage_title, topic_id, tags, metadata
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(type, bank_id) DO UPDATE SET
    difficulty = excluded.difficulty,
    prompt = excluded.prompt,
    options = excluded.options,
    correct_answer = excluded.correct_answer,
    explanation = excluded.explanation,
    passage = excluded.passage,
    passage_title = excluded.passage_title,
    topic_id = excluded.topic_id,
    tags = excluded.tags,
    metadata = excluded.metadata
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		next := make(map[models.QuestionType]int)
		for _, q := range questions {
			pos, ok := next[q.Type]
			if !ok {
				if err := tx.QueryRowContext(ctx,
					`SELECT COALESCE(MAX(position) + 1, 0) FROM questions WHERE type = ?`, string(q.Type),
				).Scan(&pos); err != nil {
					return fmt.Errorf("next position for %s: %w", q.Type, err)
				}
			}
			next[q.Type] = pos + 1

			options, _ := json.Marshal(q.Options)
			tags := []byte("[]")
			if len(q.Tags) > 0 {
				tags, _ = json.Marshal(q.Tags)
			}
			meta := []byte("{}")
			if len(q.Metadata) > 0 {
				meta, _ = json.Marshal(q.Metadata)
			}
			difficulty := q.Difficulty
			if difficulty == "" {
				difficulty = models.DifficultyMedium
			}
			var topicID any
			if q.TopicID != nil {
				topicID = *q.TopicID
			}
			if _, err := stmt.ExecContext(ctx, string(q.ID), string(q.Type), string(difficulty), pos, q.Prompt, string(options),
				q.CorrectAnswer, q.Explanation, q.Passage, q.PassageTitle, topicID, string(tags), string(meta)); err != nil {
				return fmt.Errorf("upsert question %s: %w", q.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to upsert questions: %v", err)
		return 0, err
	}
	log.Info("upserted %d questions", len(questions))
	return len(questions), nil
}
