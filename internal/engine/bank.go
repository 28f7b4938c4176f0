package engine

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

// PrepareBank copies the playable questions out of questions.
// Malformed questions are dropped with a warning. If nothing playable is
// left, the fallback set is returned and usedFallback is true.
func PrepareBank(questions []entities.Question, logger *zap.Logger) (bank []entities.Question, usedFallback bool) {
	if logger == nil {
		logger = zap.NewNop()
	}

	bank = make([]entities.Question, 0, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			logger.Warn("skipping malformed question",
				zap.Int("position", i),
				zap.String("question_id", q.ID),
				zap.Error(err),
			)
			continue
		}
		bank = append(bank, q.Clone())
	}

	if len(bank) > 0 {
		return bank, false
	}

	logger.Warn("question bank is empty, using fallback questions",
		zap.Int("supplied", len(questions)),
	)
	return FallbackQuestions(), true
}
