package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/service"
	"github.com/aliskhannn/quizmentor/internal/storage"
)

var _ service.QuizNotifier = (*Handler)(nil)

// ShowQuestion replaces the quiz message with the next question.
func (h *Handler) ShowQuestion(s *storage.Session, q entities.Question, st entities.SessionState) {
	kb := buildQuizAnswerKeyboard(q, s.ID(), st.CurrentIndex)
	h.showQuiz(s, formatQuizQuestion(q, st), &kb)
}

// ShowOutcome shows the verdict on the quiz message.
func (h *Handler) ShowOutcome(s *storage.Session, q entities.Question, out entities.AnswerOutcome) {
	kb := buildQuizFeedbackKeyboard(q, out)
	h.showQuiz(s, formatAnsweredQuestion(q, s.Engine.State(), out), &kb)
}

// ShowResult sends the final screen. stats is nil when saving failed.
func (h *Handler) ShowResult(s *storage.Session, res *entities.QuizResult, stats *entities.UserStats) {
	msg := newMessage(s.ChatID, formatQuizResult(res, stats))
	msg.ReplyMarkup = buildQuizResultKeyboard(res.Category)
	_ = h.send(msg)
}

// ShowAbandoned closes the quiz message.
func (h *Handler) ShowAbandoned(s *storage.Session, st entities.SessionState) {
	h.showQuiz(s, formatAbandoned(st), nil)
}

// showQuiz edits the quiz message, or sends a new one when there is none yet.
func (h *Handler) showQuiz(s *storage.Session, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	if id := s.MessageID(); id != 0 {
		edit := newEdit(s.ChatID, id, text)
		edit.ReplyMarkup = kb
		if err := h.send(edit); err == nil {
			return
		}
	}

	msg := newMessage(s.ChatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	sent, err := h.sendMessage(msg)
	if err != nil {
		h.logger.Warn("failed to show quiz message",
			zap.Int64("user_id", s.UserID),
			zap.String("session_id", s.ID()),
		)
		return
	}
	s.SetMessageID(sent.MessageID)
}
