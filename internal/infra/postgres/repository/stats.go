package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/infra/postgres"
)

var ErrStatsNotFound = errors.New("user stats not found")

// StatsRepository provides access to aggregated user stats.
type StatsRepository struct {
	db postgres.DBTX
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db postgres.DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

const selectStats = `
	SELECT user_id, total_xp, sessions_played, best_score, best_combo, level,
		current_streak, best_streak, last_played_on
	FROM user_stats
	WHERE user_id = $1
`

// Get returns the stats of a user.
func (r *StatsRepository) Get(ctx context.Context, userID int64) (*entities.UserStats, error) {
	return r.get(ctx, selectStats, userID)
}

// GetForUpdate returns the stats of a user and locks the row until the
// transaction ends.
func (r *StatsRepository) GetForUpdate(ctx context.Context, userID int64) (*entities.UserStats, error) {
	return r.get(ctx, selectStats+" FOR UPDATE", userID)
}

func (r *StatsRepository) get(ctx context.Context, query string, userID int64) (*entities.UserStats, error) {
	var (
		s            entities.UserStats
		lastPlayedOn *time.Time
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.TotalXP,
		&s.SessionsPlayed,
		&s.BestScore,
		&s.BestCombo,
		&s.Level,
		&s.CurrentStreak,
		&s.BestStreak,
		&lastPlayedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	if lastPlayedOn != nil {
		s.LastPlayedOn = lastPlayedOn.UTC()
	}

	return &s, nil
}

// Upsert inserts or replaces the stats of a user.
func (r *StatsRepository) Upsert(ctx context.Context, s *entities.UserStats) error {
	query := `
		INSERT INTO user_stats (
			user_id, total_xp, sessions_played, best_score, best_combo, level,
			current_streak, best_streak, last_played_on, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			total_xp = EXCLUDED.total_xp,
			sessions_played = EXCLUDED.sessions_played,
			best_score = EXCLUDED.best_score,
			best_combo = EXCLUDED.best_combo,
			level = EXCLUDED.level,
			current_streak = EXCLUDED.current_streak,
			best_streak = EXCLUDED.best_streak,
			last_played_on = EXCLUDED.last_played_on,
			updated_at = NOW()
	`

	var lastPlayedOn *time.Time
	if !s.LastPlayedOn.IsZero() {
		lastPlayedOn = &s.LastPlayedOn
	}

	_, err := r.db.Exec(ctx, query,
		s.UserID, s.TotalXP, s.SessionsPlayed, s.BestScore, s.BestCombo, s.Level,
		s.CurrentStreak, s.BestStreak, lastPlayedOn,
	)
	if err != nil {
		return fmt.Errorf("upsert user stats: %w", err)
	}

	return nil
}

// Delete removes the stats of a user.
func (r *StatsRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM user_stats WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user_stats: %w", err)
	}
	return nil
}
