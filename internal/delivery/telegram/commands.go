package telegram

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/repository"
	"github.com/aliskhannn/quizmentor/internal/service"
)

// handleStart greets the user.
func (h *Handler) handleStart(firstName string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, buildWelcomeMessage(firstName))
		if kb := buildCategoriesKeyboard(h.quizService.Categories()); kb != nil {
			msg.ReplyMarkup = *kb
		}
		return h.send(msg)
	}
}

// handleHelp lists the commands.
func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, buildHelpMessage()))
	}
}

// handleCategories lists categories with start buttons.
func (h *Handler) handleCategories() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		categories := h.quizService.Categories()
		msg := newMessage(chatID, buildCategoriesMessage(categories))
		if kb := buildCategoriesKeyboard(categories); kb != nil {
			msg.ReplyMarkup = *kb
		}
		return h.send(msg)
	}
}

// handleQuiz starts a quiz in the given category, or shows the picker
// when no category was given.
func (h *Handler) handleQuiz(userID int64, category string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		category = strings.TrimSpace(category)
		if category == "" {
			return h.handleCategories()(ctx, chatID)
		}
		return h.startQuiz(ctx, userID, chatID, category)
	}
}

// startQuiz starts a session and sends its first question.
func (h *Handler) startQuiz(ctx context.Context, userID, chatID int64, category string) error {
	sess, err := h.quizService.StartQuiz(ctx, userID, chatID, category)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			categories := h.quizService.Categories()
			msg := newMessage(chatID, buildUnknownCategoryMessage(category, categories))
			if kb := buildCategoriesKeyboard(categories); kb != nil {
				msg.ReplyMarkup = *kb
			}
			return h.send(msg)
		}
		return err
	}

	q, ok := sess.Engine.Current()
	if !ok {
		return nil
	}
	st := sess.Engine.State()

	msg := newMessage(chatID, formatQuizQuestion(q, st))
	msg.ReplyMarkup = buildQuizAnswerKeyboard(q, sess.ID(), st.CurrentIndex)

	sent, err := h.sendMessage(msg)
	if err != nil {
		return err
	}
	sess.SetMessageID(sent.MessageID)

	h.logger.Debug("quiz message sent",
		zap.Int64("user_id", userID),
		zap.String("session_id", sess.ID()),
		zap.Int("message_id", sent.MessageID),
	)
	return nil
}

// handleStats shows the user's level and records.
func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.quizService.Stats(ctx, userID)
		if err != nil {
			h.logger.Error("failed to load stats",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgStatsUnavailable))
		}

		msg := newMessage(chatID, formatStats(stats))
		msg.ReplyMarkup = buildStatsKeyboard()
		return h.send(msg)
	}
}

// handleHistory shows the latest results.
func (h *Handler) handleHistory(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		results, err := h.quizService.History(ctx, userID, historyLimit)
		if err != nil {
			h.logger.Error("failed to load history",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgHistoryUnavailable))
		}
		return h.send(newMessage(chatID, formatHistory(results)))
	}
}

// handleStop abandons the running quiz. The abandon notification edits the
// quiz message.
func (h *Handler) handleStop(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := h.quizService.Stop(userID)
		if errors.Is(err, service.ErrNoActiveSession) || errors.Is(err, service.ErrStaleSession) {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}
		return err
	}
}

// handleReset asks for confirmation before deleting results.
func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, buildResetConfirmMessage())
		msg.ReplyMarkup = buildResetKeyboard()
		return h.send(msg)
	}
}
