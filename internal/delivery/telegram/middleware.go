package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling reports a failed or panicking handler to the user.
// Expected quiz errors get their own message and are only logged at debug level.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("handler panic: %v", r)
			}
			if err == nil {
				return
			}

			text, expected := userFacingError(err)
			if expected {
				h.logger.Debug("handler rejected request", zap.Int64("chat_id", chatID), zap.Error(err))
			} else {
				h.logger.Error("handle error", zap.Int64("chat_id", chatID), zap.Error(err))
			}
			h.sendError(chatID, text)
			err = nil
		}()

		return fn(ctx, chatID)
	}
}

// userFacingError picks the message shown for err and reports whether err
// is a normal outcome of user actions.
func userFacingError(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession), errors.Is(err, service.ErrStaleSession):
		return msgNoActiveQuiz, true
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return msgTryAgain, false
	default:
		return msgInternalError, false
	}
}
