package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/storage"
)

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
}

// QuestionRepository serves question banks by category.
type QuestionRepository interface {
	Categories() []string
	GetByCategory(category string) ([]entities.Question, error)
	DisplayName(category string) (string, bool)
}

// QuestionPicker chooses the questions of one quiz.
type QuestionPicker interface {
	Select(questions []entities.Question, limit int) []entities.Question
}

// ResultRecorder persists finished sessions and the stats derived from them.
type ResultRecorder interface {
	Record(ctx context.Context, res *entities.QuizResult) (*entities.UserStats, error)
	Stats(ctx context.Context, userID int64) (*entities.UserStats, error)
	Recent(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error)
}

// QuizNotifier shows session events to the player.
type QuizNotifier interface {
	ShowQuestion(s *storage.Session, q entities.Question, state entities.SessionState)
	ShowOutcome(s *storage.Session, q entities.Question, outcome entities.AnswerOutcome)
	ShowResult(s *storage.Session, res *entities.QuizResult, stats *entities.UserStats)
	ShowAbandoned(s *storage.Session, state entities.SessionState)
}
