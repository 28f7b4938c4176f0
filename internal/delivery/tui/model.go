// Package tui plays quiz sessions in the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/engine"
)

// SessionFactory creates a session that reports to observer.
type SessionFactory func(observer engine.Observer) *engine.Engine

// Options configures the terminal UI.
type Options struct {
	NoColor      bool
	TickInterval time.Duration // timer tick period, defaults to one second
	AdvanceDelay time.Duration // pause before the next question, 0 waits for enter
}

// Model renders a quiz session using Bubble Tea.
type Model struct {
	newSession SessionFactory
	session    *engine.Engine
	events     *recorder
	question   entities.Question
	state      entities.SessionState
	opts       Options
	quitting   bool
}

// NewModel starts a session from factory.
func NewModel(factory SessionFactory, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = engine.DefaultTickInterval
	}
	m := Model{newSession: factory, opts: opts}
	return m.restart()
}

func (m Model) restart() Model {
	m.events = &recorder{}
	m.session = m.newSession(m.events)
	m.refresh()
	return m
}

// refresh copies the engine view into the model.
func (m *Model) refresh() {
	m.state = m.session.State()
	if q, ok := m.session.Current(); ok {
		m.question = q
	}
}

// tickMsg carries a timer tick for one question.
type tickMsg struct {
	session string
	index   int
}

// advanceMsg moves past an answered question.
type advanceMsg struct {
	session string
	index   int
}

// Init starts the question timer.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	if !m.session.TimerEnabled() || m.state.Phase != entities.PhaseInProgress {
		return nil
	}
	msg := tickMsg{session: m.state.SessionID, index: m.state.CurrentIndex}
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg { return msg })
}

func (m Model) scheduleAdvance() tea.Cmd {
	if m.opts.AdvanceDelay <= 0 || m.state.Phase != entities.PhaseAwaitingAdvance {
		return nil
	}
	msg := advanceMsg{session: m.state.SessionID, index: m.state.CurrentIndex}
	return tea.Tick(m.opts.AdvanceDelay, func(time.Time) tea.Msg { return msg })
}

// Update handles keys, timer ticks and delayed advances.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case tickMsg:
		if typed.session != m.state.SessionID || typed.index != m.state.CurrentIndex {
			return m, nil
		}
		if m.session.Tick() {
			m.refresh()
			return m, m.scheduleAdvance()
		}
		m.refresh()
		return m, m.tick()

	case advanceMsg:
		if typed.session != m.state.SessionID || typed.index != m.state.CurrentIndex {
			return m, nil
		}
		return m.advance()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q", "esc":
		m.session.Abandon()
		m.refresh()
		m.quitting = true
		return m, tea.Quit

	case "enter", " ":
		return m.advance()

	case "r":
		if m.state.Phase.Terminal() {
			m = m.restart()
			return m, m.tick()
		}

	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			return m.answer(int(key[0] - '1'))
		}
	}
	return m, nil
}

func (m Model) answer(index int) (tea.Model, tea.Cmd) {
	if _, ok := m.session.SubmitAnswer(index); !ok {
		return m, nil
	}
	m.refresh()
	return m, m.scheduleAdvance()
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if !m.session.Advance() {
		return m, nil
	}
	m.events.outcome = nil
	m.refresh()
	return m, m.tick()
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.events.result != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderResult(*m.events.result, m.opts.NoColor),
			renderFooter(m.state, m.opts.NoColor),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.opts.NoColor),
		renderStatus(m.state, m.opts.NoColor),
		"",
		renderQuestion(m.question, m.events.outcome, m.opts.NoColor),
		renderFeedback(m.question, m.events.outcome, m.opts.NoColor),
		renderFooter(m.state, m.opts.NoColor),
	)
}
