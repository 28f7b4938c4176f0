package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	logger     *zap.Logger
}

func NewUserService(repository UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repository: repository, logger: logger}
}

// EnsureUser registers the user or refreshes their chat binding.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, username string) error {
	created, err := s.repository.Save(ctx, entities.NewUser(userID, chatID, username))
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("new user registered", zap.Int64("user_id", userID))
	}
	return nil
}
