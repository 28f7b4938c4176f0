// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

// Error and status messages.
const (
	msgInternalError      = "Something went wrong. Please try again later."
	msgTryAgain           = "That took too long. Please try again."
	msgUnknownCommand     = "Unknown command. Send /help to see what I can do."
	msgNoActiveQuiz       = "You have no running quiz. Start one with /quiz."
	msgQuizExpired        = "This quiz is no longer active."
	msgQuestionExpired    = "This question is already closed."
	msgAlreadyAnswered    = "You have already answered this question."
	msgInvalidOption      = "That option does not exist."
	msgStatsUnavailable   = "Could not load your stats. Please try again later."
	msgHistoryUnavailable = "Could not load your history. Please try again later."
	msgNoCategories       = "There are no quiz categories yet."
	msgResetDone          = "Your results and stats were deleted."
	msgResetCancelled     = "Reset cancelled."
	msgNoHistory          = "You have not finished any quiz yet."
)

const (
	historyLimit   = 5
	progressBarLen = 10
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// buildWelcomeMessage builds the /start message.
func buildWelcomeMessage(name string) string {
	greeting := "Hi!"
	if name != "" {
		greeting = fmt.Sprintf("Hi, %s!", name)
	}

	var sb strings.Builder
	sb.WriteString(bold(greeting))
	sb.WriteString("\n\n")
	sb.WriteString(md("I run quick multiple-choice quizzes. Every correct answer in a row grows your combo and earns more points. Every miss costs a life, and the quiz ends when you run out of lives or questions."))
	sb.WriteString("\n\n")
	sb.WriteString(buildHelpMessage())
	return sb.String()
}

// buildHelpMessage lists the bot commands.
func buildHelpMessage() string {
	lines := []string{
		"/quiz - pick a category and play",
		"/quiz <category> - play a category right away",
		"/categories - list categories",
		"/stats - your level and best results",
		"/history - your last quizzes",
		"/stop - leave the running quiz",
		"/reset - delete your results",
	}
	return md(strings.Join(lines, "\n"))
}

// buildCategoriesMessage lists the categories.
func buildCategoriesMessage(categories []string) string {
	if len(categories) == 0 {
		return md(msgNoCategories)
	}

	var sb strings.Builder
	sb.WriteString(bold("📚 Categories"))
	sb.WriteString("\n\n")
	for _, c := range categories {
		sb.WriteString(md("• " + c))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(md("Pick one below or send /quiz <category>."))
	return sb.String()
}

// buildUnknownCategoryMessage tells the user the category does not exist.
func buildUnknownCategoryMessage(category string, categories []string) string {
	return fmt.Sprintf("%s %s\n\n%s",
		md("Unknown category"),
		bold(category),
		buildCategoriesMessage(categories),
	)
}

// buildLivesBar renders remaining lives as hearts.
func buildLivesBar(lives int) string {
	if lives <= 0 {
		return "💔"
	}
	return strings.Repeat("❤️", lives)
}

// buildProgressBar creates a text progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return strings.Repeat("░", length)
	}

	filled := current * length / total
	if filled > length {
		filled = length
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}

// buildStatusLine shows score, combo and lives.
func buildStatusLine(score, combo, lives int) string {
	parts := []string{
		fmt.Sprintf("⭐ %d", score),
		buildLivesBar(lives),
	}
	if combo > 1 {
		parts = append(parts, fmt.Sprintf("🔥 x%d", combo))
	}
	return md(strings.Join(parts, "   "))
}

// formatQuizQuestion formats the active question with the session status.
func formatQuizQuestion(q entities.Question, st entities.SessionState) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("%s · Question %d of %d", st.Category, st.CurrentIndex+1, st.TotalQuestions)))
	sb.WriteString("\n")
	sb.WriteString(buildStatusLine(st.Score, st.Combo, st.Lives))
	if st.TimeRemaining != nil {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("⏱ %d s to answer", *st.TimeRemaining)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.Prompt))
	if q.Difficulty != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(string(q.Difficulty)))
	}

	return sb.String()
}

// formatAnsweredQuestion formats a question together with its verdict.
func formatAnsweredQuestion(q entities.Question, st entities.SessionState, out entities.AnswerOutcome) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s",
		md(fmt.Sprintf("%s · Question %d of %d", st.Category, out.QuestionIndex+1, st.TotalQuestions)),
		bold(q.Prompt),
		formatAnswerFeedback(q, out),
	)
}

// formatAnswerFeedback formats the verdict for an answered question.
func formatAnswerFeedback(q entities.Question, out entities.AnswerOutcome) string {
	var sb strings.Builder

	switch {
	case out.IsCorrect:
		sb.WriteString(md(fmt.Sprintf("✅ Correct! +%d", out.ScoreDelta)))
		if out.ComboAfter > 1 {
			sb.WriteString(md(fmt.Sprintf("  🔥 combo x%d", out.ComboAfter)))
		}
	case out.TimedOut:
		sb.WriteString(md("⌛ Time is up!"))
	default:
		sb.WriteString(md("❌ Wrong"))
	}

	if !out.IsCorrect && q.HasOption(out.CorrectIndex) {
		sb.WriteString("\n")
		sb.WriteString(md("Correct answer: "))
		sb.WriteString(bold(q.Options[out.CorrectIndex]))
	}

	if out.Explanation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(italic(out.Explanation))
	}

	sb.WriteString("\n\n")
	sb.WriteString(buildStatusLine(out.ScoreAfter, out.ComboAfter, out.LivesAfter))

	return sb.String()
}

// formatQuizResult formats the final screen of a quiz.
func formatQuizResult(res *entities.QuizResult, stats *entities.UserStats) string {
	accuracy := 0.0
	if res.TotalQuestions > 0 {
		accuracy = float64(res.CorrectAnswers) / float64(res.TotalQuestions) * 100
	}

	emoji, message := "📚", "Keep practising!"
	switch {
	case res.Reason == entities.ReasonLivesExhausted:
		emoji, message = "💔", "Out of lives. Try again!"
	case accuracy >= 90:
		emoji, message = "🌟", "Outstanding!"
	case accuracy >= 70:
		emoji, message = "👍", "Great result!"
	case accuracy >= 50:
		emoji, message = "💪", "Not bad, keep going!"
	}

	var sb strings.Builder
	sb.WriteString(md(emoji + " "))
	sb.WriteString(bold("Quiz complete!"))
	sb.WriteString("\n\n")
	sb.WriteString(md(res.Category))
	sb.WriteString("\n")
	sb.WriteString(md("Score: "))
	sb.WriteString(bold(fmt.Sprintf("%d", res.Score)))
	sb.WriteString("\n")
	sb.WriteString(md("Correct: "))
	sb.WriteString(bold(fmt.Sprintf("%d/%d (%.0f%%)", res.CorrectAnswers, res.TotalQuestions, accuracy)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(res.CorrectAnswers, res.TotalQuestions, progressBarLen)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Best combo: %d", res.MaxCombo)))

	if stats != nil {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("Level %d · %d XP", stats.Level, stats.TotalXP)))
		if stats.Level < entities.MaxLevel {
			sb.WriteString(md(fmt.Sprintf(" · %d XP to next level", stats.XPToNextLevel())))
		}
		if stats.CurrentStreak > 1 {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("🔥 %d day streak", stats.CurrentStreak)))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(message))

	return sb.String()
}

// formatStats formats the /stats screen.
func formatStats(stats *entities.UserStats) string {
	if stats.SessionsPlayed == 0 {
		return md("No finished quizzes yet. Start one with /quiz!")
	}

	var sb strings.Builder
	sb.WriteString(bold("📊 Your stats"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Level: %d", stats.Level)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Total XP: %d", stats.TotalXP)))
	if stats.Level < entities.MaxLevel {
		need := entities.XPForLevel(stats.Level)
		left := stats.XPToNextLevel()
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %d XP to level %d",
			buildProgressBar(need-left, need, progressBarLen), left, stats.Level+1)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Quizzes played: %d", stats.SessionsPlayed)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Best score: %d", stats.BestScore)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Best combo: %d", stats.BestCombo)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🔥 Day streak: %d (best %d)", stats.CurrentStreak, stats.BestStreak)))
	if title := entities.StreakTitle(stats.BestStreak); title != "" {
		sb.WriteString("\n")
		sb.WriteString(md("🏅 " + title))
	}

	return sb.String()
}

// formatHistory formats the latest results.
func formatHistory(results []*entities.QuizResult) string {
	if len(results) == 0 {
		return md(msgNoHistory)
	}

	var sb strings.Builder
	sb.WriteString(bold("🕘 Recent quizzes"))
	sb.WriteString("\n")
	for _, r := range results {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s · %s · %d pts · %d/%d",
			r.CompletedAt.Format("Jan 02 15:04"),
			r.Category,
			r.Score,
			r.CorrectAnswers,
			r.TotalQuestions,
		)))
	}
	return sb.String()
}

// formatAbandoned formats the message shown when a quiz is left early.
func formatAbandoned(st entities.SessionState) string {
	return fmt.Sprintf("%s\n\n%s",
		bold("⏹ Quiz stopped"),
		md(fmt.Sprintf("%d correct answers before stopping at question %d of %d. Nothing was saved.", st.CorrectAnswers, st.CurrentIndex+1, st.TotalQuestions)),
	)
}

// buildResetConfirmMessage asks the user to confirm a reset.
func buildResetConfirmMessage() string {
	return fmt.Sprintf("%s\n\n%s",
		bold("⚠️ Delete all results?"),
		md("Your level, XP and history will be lost."),
	)
}
