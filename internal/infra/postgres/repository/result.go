package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/infra/postgres"
)

// ResultRepository stores finished quiz sessions.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create inserts a result and returns its row ID.
// Saving the same session twice keeps the first row.
func (r *ResultRepository) Create(ctx context.Context, res *entities.QuizResult) (int64, bool, error) {
	query := `
		INSERT INTO quiz_results (
			session_id, user_id, category, score, total_questions,
			correct_answers, max_combo, lives_left, reason, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id
	`

	rows, err := r.db.Query(
		ctx,
		query,
		res.SessionID,
		res.UserID,
		res.Category,
		res.Score,
		res.TotalQuestions,
		res.CorrectAnswers,
		res.MaxCombo,
		res.LivesLeft,
		string(res.Reason),
		res.StartedAt,
		res.CompletedAt,
	)
	if err != nil {
		return 0, false, fmt.Errorf("create quiz result: %w", err)
	}
	defer rows.Close()

	var id int64
	inserted := false
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, false, fmt.Errorf("scan quiz result id: %w", err)
		}
		inserted = true
	}
	if err := rows.Err(); err != nil {
		return 0, false, fmt.Errorf("create quiz result: %w", err)
	}

	return id, inserted, nil
}

// ListRecentByUser returns the latest results of a user, newest first.
func (r *ResultRepository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	query := `
		SELECT id, session_id, user_id, category, score, total_questions,
		       correct_answers, max_combo, lives_left, reason, started_at, completed_at
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	var results []*entities.QuizResult
	for rows.Next() {
		var (
			res    entities.QuizResult
			reason string
		)
		if err := rows.Scan(
			&res.ID,
			&res.SessionID,
			&res.UserID,
			&res.Category,
			&res.Score,
			&res.TotalQuestions,
			&res.CorrectAnswers,
			&res.MaxCombo,
			&res.LivesLeft,
			&reason,
			&res.StartedAt,
			&res.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		res.Reason = entities.CompletionReason(reason)
		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}

	return results, nil
}

// DeleteByUser removes all results of a user.
func (r *ResultRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM quiz_results WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete quiz_results: %w", err)
	}
	return nil
}
