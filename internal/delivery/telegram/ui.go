package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

var optionMarkers = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

func optionLabel(i int, option string) string {
	if i < len(optionMarkers) {
		return optionMarkers[i] + ". " + option
	}
	return fmt.Sprintf("%d. %s", i+1, option)
}

// buildQuizAnswerKeyboard builds one button per option plus a stop button.
func buildQuizAnswerKeyboard(q entities.Question, sessionID string, questionIndex int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+1)
	for i, option := range q.Options {
		data := buildQuizAnswerCallback(sessionID, questionIndex, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(optionLabel(i, option), data),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏹ Stop", buildQuizStopCallback(sessionID)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizFeedbackKeyboard marks the chosen and correct options and offers
// the next question.
func buildQuizFeedbackKeyboard(q entities.Question, out entities.AnswerOutcome) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+1)
	for i, option := range q.Options {
		label := optionLabel(i, option)
		switch {
		case i == out.CorrectIndex:
			label = "✅ " + label
		case out.Selected != nil && *out.Selected == i:
			label = "❌ " + label
		}
		// Buttons of an answered question resolve to a closed callback.
		data := buildQuizAnswerCallback(out.SessionID, out.QuestionIndex, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}
	if !out.Final {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildQuizNextCallback(out.SessionID)),
			tgbotapi.NewInlineKeyboardButtonData("⏹ Stop", buildQuizStopCallback(out.SessionID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCategoriesKeyboard builds one start button per category.
func buildCategoriesKeyboard(categories []string) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range categories {
		data := buildQuizStartCallback(c)
		if data == "" {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 "+c, data),
		))
	}
	if len(rows) == 0 {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard(category string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if data := buildQuizStartCallback(category); data != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", data),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Other category", buildQuizPickCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My stats", buildStatsCallback()),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildStatsKeyboard builds keyboard for the stats screen.
func buildStatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildStatsCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start a quiz", buildQuizPickCallback()),
		),
	)
}

// buildResetKeyboard asks to confirm a reset.
func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}
