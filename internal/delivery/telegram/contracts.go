package telegram

import (
	"context"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/storage"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username string) error
}

type QuizService interface {
	Categories() []string
	StartQuiz(ctx context.Context, userID, chatID int64, category string) (*storage.Session, error)
	Answer(userID int64, sessionID string, questionIndex, option int) (entities.AnswerOutcome, error)
	Continue(userID int64, sessionID string) error
	Stop(userID int64) error
	Leave(userID int64, sessionID string) error
	Stats(ctx context.Context, userID int64) (*entities.UserStats, error)
	History(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}
