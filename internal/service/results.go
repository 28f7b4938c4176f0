package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/infra/postgres"
	"github.com/aliskhannn/quizmentor/internal/infra/postgres/repository"
)

// ResultService stores quiz results and keeps user stats in sync with them.
type ResultService struct {
	tr Transactor
	db postgres.DBTX
}

func NewResultService(tr Transactor, db postgres.DBTX) *ResultService {
	return &ResultService{
		tr: tr,
		db: db,
	}
}

// Record saves res and folds it into the user's stats in one transaction.
// A result that was already saved leaves the stats untouched.
func (s *ResultService) Record(ctx context.Context, res *entities.QuizResult) (*entities.UserStats, error) {
	var stats *entities.UserStats

	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		resultRepo := repository.NewResultRepository(tx)
		statsRepo := repository.NewStatsRepository(tx)

		id, inserted, err := resultRepo.Create(ctx, res)
		if err != nil {
			return err
		}

		current, err := statsRepo.GetForUpdate(ctx, res.UserID)
		if errors.Is(err, repository.ErrStatsNotFound) {
			current = entities.NewUserStats(res.UserID)
		} else if err != nil {
			return err
		}

		if inserted {
			res.ID = id
			current.Apply(res)
			if err := statsRepo.Upsert(ctx, current); err != nil {
				return err
			}
		}

		stats = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record quiz result: %w", err)
	}

	return stats, nil
}

// Stats returns the user's stats. Users without results get empty stats.
func (s *ResultService) Stats(ctx context.Context, userID int64) (*entities.UserStats, error) {
	stats, err := repository.NewStatsRepository(s.db).Get(ctx, userID)
	if errors.Is(err, repository.ErrStatsNotFound) {
		return entities.NewUserStats(userID), nil
	}
	return stats, err
}

// Recent returns the user's latest results.
func (s *ResultService) Recent(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	return repository.NewResultRepository(s.db).ListRecentByUser(ctx, userID, limit)
}

// ResetUser deletes the user's results and stats.
func (s *ResultService) ResetUser(ctx context.Context, userID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := repository.NewResultRepository(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return repository.NewStatsRepository(tx).Delete(ctx, userID)
	})
}
