package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	data := decodeCallback(cb.Data)

	var toast string
	switch data.Action {
	case actionQuiz:
		toast = h.handleQuizCallback(ctx, cb, data.Params)
	case actionStats:
		_ = h.withErrorHandling(h.editStats(userID, cb.Message.MessageID))(ctx, chatID)
	case actionReset:
		_ = h.withErrorHandling(h.handleResetCallback(userID, cb.Message.MessageID, data.Params))(ctx, chatID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

// handleQuizCallback handles quiz buttons and returns a toast for the user.
func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, params []string) string {
	if len(params) == 0 {
		return ""
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	var err error
	switch params[0] {
	case quizAnswer:
		var payload quizAnswerData
		payload, err = parseQuizAnswer(params)
		if err != nil {
			h.logger.Debug("invalid answer callback", zap.Strings("params", params))
			return ""
		}
		_, err = h.quizService.Answer(userID, payload.SessionID, payload.QuestionIndex, payload.Option)

	case quizNext:
		if len(params) != 2 {
			return ""
		}
		err = h.quizService.Continue(userID, params[1])

	case quizStop:
		if len(params) != 2 {
			return ""
		}
		err = h.quizService.Leave(userID, params[1])

	case quizStart:
		if len(params) != 2 {
			return ""
		}
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.startQuiz(ctx, userID, chatID, params[1])
		})(ctx, chatID)

	case quizPick:
		_ = h.withErrorHandling(h.handleCategories())(ctx, chatID)
	}

	return quizErrorToast(err)
}

func quizErrorToast(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrNoActiveSession), errors.Is(err, service.ErrStaleSession):
		return msgQuizExpired
	case errors.Is(err, service.ErrStaleQuestion):
		return msgQuestionExpired
	case errors.Is(err, service.ErrAlreadyAnswered):
		return msgAlreadyAnswered
	case errors.Is(err, service.ErrInvalidOption):
		return msgInvalidOption
	default:
		return msgInternalError
	}
}

// editStats refreshes the stats message in place.
func (h *Handler) editStats(userID int64, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.quizService.Stats(ctx, userID)
		if err != nil {
			return err
		}
		edit := newEdit(chatID, messageID, formatStats(stats))
		kb := buildStatsKeyboard()
		edit.ReplyMarkup = &kb
		return h.send(edit)
	}
}

func (h *Handler) handleResetCallback(userID int64, messageID int, params []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(params) != 1 {
			return nil
		}

		switch params[0] {
		case resetConfirm:
			if err := h.resetService.ResetUser(ctx, userID); err != nil {
				return err
			}
			h.logger.Info("user results reset", zap.Int64("user_id", userID))
			return h.send(newEdit(chatID, messageID, md(msgResetDone)))
		case resetCancel:
			return h.send(newEdit(chatID, messageID, md(msgResetCancelled)))
		}
		return nil
	}
}
