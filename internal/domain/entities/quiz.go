package entities

import (
	"time"
)

// QuizResult is a finished quiz session stored for a user.
// It tracks the session result together with ownership and timestamps.
type QuizResult struct {
	ID             int64            // unique row ID
	SessionID      string           // engine session ID
	UserID         int64            // user who played the quiz
	Category       string           // category label
	Score          int              // final score
	TotalQuestions int              // number of questions in the session
	CorrectAnswers int              // number of correct answers
	MaxCombo       int              // longest streak
	LivesLeft      int              // lives remaining at the end
	Reason         CompletionReason // why the session ended
	StartedAt      time.Time        // timestamp when the quiz started
	CompletedAt    time.Time        // timestamp when the quiz was completed
}

// NewQuizResult creates a stored result from an engine result.
func NewQuizResult(userID int64, res SessionResult, startedAt time.Time) *QuizResult {
	return &QuizResult{
		SessionID:      res.SessionID,
		UserID:         userID,
		Category:       res.Category,
		Score:          res.Score,
		TotalQuestions: res.TotalQuestions,
		CorrectAnswers: res.CorrectAnswers,
		MaxCombo:       res.MaxCombo,
		LivesLeft:      res.LivesLeft,
		Reason:         res.Reason,
		StartedAt:      startedAt,
		CompletedAt:    time.Now(),
	}
}

// Duration returns how long the quiz took.
func (r *QuizResult) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
