package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

var (
	colorTitle   = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorCombo   = lipgloss.Color("208")
	colorLives   = lipgloss.Color("161")
)

// renderHeader renders the category and question counter.
func renderHeader(st entities.SessionState, noColor bool) string {
	line := fmt.Sprintf("%s | Question %d of %d", st.Category, st.CurrentIndex+1, st.TotalQuestions)
	return stylize(line, noColor, colorTitle, true)
}

// renderStatus renders score, combo, lives and the timer.
func renderStatus(st entities.SessionState, noColor bool) string {
	parts := []string{
		fmt.Sprintf("Score: %d", st.Score),
		stylize("Lives: "+strings.Repeat("♥", st.Lives), noColor, colorLives, false),
	}
	if st.Combo > 1 {
		parts = append(parts, stylize(fmt.Sprintf("Combo x%d", st.Combo), noColor, colorCombo, true))
	}
	if st.TimeRemaining != nil {
		parts = append(parts, fmt.Sprintf("Time: %ds", *st.TimeRemaining))
	}
	return strings.Join(parts, "   ")
}

// renderQuestion renders the prompt and numbered options. Once answered the
// correct and chosen options are marked.
func renderQuestion(q entities.Question, out *entities.AnswerOutcome, noColor bool) string {
	var sb strings.Builder
	sb.WriteString(stylize(q.Prompt, noColor, "", true))
	sb.WriteString("\n\n")

	for i, option := range q.Options {
		line := fmt.Sprintf("  %d) %s", i+1, option)
		if out != nil {
			switch {
			case i == out.CorrectIndex:
				line = stylize("✔ "+line[2:], noColor, colorCorrect, true)
			case out.Selected != nil && *out.Selected == i:
				line = stylize("✘ "+line[2:], noColor, colorWrong, false)
			}
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderFeedback renders the verdict for an answered question.
func renderFeedback(q entities.Question, out *entities.AnswerOutcome, noColor bool) string {
	if out == nil {
		return ""
	}

	var line string
	switch {
	case out.IsCorrect:
		line = stylize(fmt.Sprintf("Correct! +%d", out.ScoreDelta), noColor, colorCorrect, true)
	case out.TimedOut:
		line = stylize("Time is up!", noColor, colorWrong, true)
	default:
		line = stylize("Wrong.", noColor, colorWrong, true)
	}
	if !out.IsCorrect && q.HasOption(out.CorrectIndex) {
		line += " The answer is " + q.Options[out.CorrectIndex] + "."
	}
	if out.Explanation != "" {
		line += "\n" + stylize(out.Explanation, noColor, colorMuted, false)
	}
	return line + "\n"
}

// renderResult renders the final screen.
func renderResult(res entities.SessionResult, noColor bool) string {
	title := "Quiz complete!"
	if res.Reason == entities.ReasonLivesExhausted {
		title = "Out of lives!"
	}

	lines := []string{
		stylize(title, noColor, colorTitle, true),
		"",
		fmt.Sprintf("Category:   %s", res.Category),
		fmt.Sprintf("Score:      %d", res.Score),
		fmt.Sprintf("Correct:    %d/%d (%d%%)", res.CorrectAnswers, res.TotalQuestions, res.Accuracy()),
		fmt.Sprintf("Best combo: %d", res.MaxCombo),
		fmt.Sprintf("Lives left: %d", res.LivesLeft),
		"",
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders the key help for the current phase.
func renderFooter(st entities.SessionState, noColor bool) string {
	var help string
	switch st.Phase {
	case entities.PhaseInProgress:
		help = "1-9 answer • q quit"
	case entities.PhaseAwaitingAdvance:
		help = "enter next • q quit"
	default:
		help = "r play again • q quit"
	}
	return stylize(help, noColor, colorMuted, false)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color, bold bool) string {
	if noColor {
		return text
	}
	style := lipgloss.NewStyle().Bold(bold)
	if color != "" {
		style = style.Foreground(color)
	}
	return style.Render(text)
}
