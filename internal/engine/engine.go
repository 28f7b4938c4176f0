// Package engine implements the quiz session state machine: question
// sequencing, answer evaluation, combo scoring, lives and the optional
// per-question timer.
package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

// Reasons an answer submission was rejected.
var (
	ErrWrongQuestion   = errors.New("answer is for another question")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrInvalidOption   = errors.New("option out of range")
	ErrSessionOver     = errors.New("session is over")
)

// Engine runs a single quiz session.
//
// Phases move InProgress -> AwaitingAdvance -> InProgress | Completed.
// A submission that takes the last life goes straight to Completed.
// Completed and Abandoned are terminal and every later call is a no-op.
type Engine struct {
	mu sync.Mutex

	id           string
	category     string
	opts         Options
	usedFallback bool

	seq     *QuestionSequencer
	combo   ComboTracker
	lives   *LivesTracker
	timer   *SessionTimer
	scoring Scoring

	score    int
	correct  int
	selected *int
	answered bool
	phase    entities.Phase
	started  bool
	done     chan struct{}

	observer Observer
	logger   *zap.Logger
}

// event is one pending observer notification.
type event struct {
	outcome *entities.AnswerOutcome
	result  *entities.SessionResult
	back    *entities.SessionState
}

// New creates a session over questions. An empty or unusable bank is
// replaced by FallbackQuestions, and an empty category by FallbackCategory.
// The session is InProgress on return; Start only launches background work.
func New(
	opts Options,
	category string,
	questions []entities.Question,
	observer Observer,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.NewString()
	logger = logger.With(zap.String("session_id", id))

	opts = opts.normalize(logger)

	category = strings.TrimSpace(category)
	if category == "" {
		category = FallbackCategory
	}

	if observer == nil {
		observer = ObserverFuncs{Logger: logger}
	}

	bank, usedFallback := PrepareBank(questions, logger)

	e := &Engine{
		id:           id,
		category:     category,
		opts:         opts,
		usedFallback: usedFallback,
		seq:          NewQuestionSequencer(bank),
		lives:        NewLivesTracker(opts.StartingLives),
		timer:        NewSessionTimer(opts.TimerSeconds),
		scoring:      opts.Scoring,
		phase:        entities.PhaseInProgress,
		done:         make(chan struct{}),
		observer:     observer,
		logger:       logger,
	}
	e.timer.Restart()

	logger.Debug("quiz session created",
		zap.String("category", category),
		zap.Int("total_questions", len(bank)),
		zap.Bool("fallback", usedFallback),
		zap.Int("starting_lives", opts.StartingLives),
		zap.Int("timer_seconds", opts.TimerSeconds),
	)

	return e
}

// ID returns the session ID.
func (e *Engine) ID() string { return e.id }

// Category returns the session category.
func (e *Engine) Category() string { return e.category }

// UsedFallback reports whether the built-in questions replaced the supplied bank.
func (e *Engine) UsedFallback() bool { return e.usedFallback }

// TimerEnabled reports whether questions are timed.
func (e *Engine) TimerEnabled() bool { return e.timer.Enabled() }

// Done is closed once the session is completed or abandoned.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Start launches the background ticker when the timer is enabled with a
// positive TickInterval. Cancelling ctx abandons the session.
// Calling Start more than once has no effect.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started || e.phase.Terminal() {
		return
	}
	e.started = true

	var interval time.Duration
	if e.timer.Enabled() {
		interval = e.opts.TickInterval
	}
	if interval == 0 && ctx.Done() == nil {
		return
	}

	go e.run(ctx, interval)
}

func (e *Engine) run(ctx context.Context, interval time.Duration) {
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			e.Abandon()
			return
		case <-e.done:
			return
		case <-tick:
			e.Tick()
		}
	}
}

// Current returns the active question. It returns false once the session
// is over.
func (e *Engine) Current() (entities.Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase.Terminal() {
		return entities.Question{}, false
	}
	q, ok := e.seq.Current()
	if !ok {
		return entities.Question{}, false
	}
	return q.Clone(), true
}

// State returns a snapshot of the session.
func (e *Engine) State() entities.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// SubmitAnswer judges the option at index for the active question.
// It returns false without touching the state when the session is not
// waiting for an answer or index is not a valid option.
func (e *Engine) SubmitAnswer(index int) (entities.AnswerOutcome, bool) {
	outcome, err := e.submit(-1, index)
	return outcome, err == nil
}

// SubmitAnswerAt is SubmitAnswer for callers that rendered a specific
// question. The answer is only judged while questionIndex is still the
// active question; the check and the submission happen under one lock.
func (e *Engine) SubmitAnswerAt(questionIndex, index int) (entities.AnswerOutcome, error) {
	return e.submit(questionIndex, index)
}

// submit judges index. A negative questionIndex skips the question check.
func (e *Engine) submit(questionIndex, index int) (entities.AnswerOutcome, error) {
	e.mu.Lock()

	if questionIndex >= 0 && !e.phase.Terminal() && e.seq.Index() != questionIndex {
		e.logger.Debug("ignoring answer for another question",
			zap.Int("question_index", questionIndex),
			zap.Int("current_index", e.seq.Index()),
		)
		e.mu.Unlock()
		return entities.AnswerOutcome{}, ErrWrongQuestion
	}

	if e.phase != entities.PhaseInProgress || e.answered {
		e.logger.Debug("ignoring answer submission",
			zap.String("phase", string(e.phase)),
			zap.Bool("answered", e.answered),
			zap.Int("index", index),
		)
		e.mu.Unlock()
		if e.phase.Terminal() {
			return entities.AnswerOutcome{}, ErrSessionOver
		}
		return entities.AnswerOutcome{}, ErrAlreadyAnswered
	}

	q, _ := e.seq.Current()
	if !q.HasOption(index) {
		e.logger.Warn("ignoring answer outside option range",
			zap.Int("index", index),
			zap.Int("options", len(q.Options)),
		)
		e.mu.Unlock()
		return entities.AnswerOutcome{}, ErrInvalidOption
	}

	selected := index
	outcome, events := e.resolveLocked(&selected, false)
	e.mu.Unlock()

	e.dispatch(events)
	return outcome, nil
}

// Tick advances the question timer by one second. When the countdown hits
// zero on an unanswered question the question is resolved as incorrect.
// It reports whether the tick expired the question.
func (e *Engine) Tick() bool {
	e.mu.Lock()

	if e.phase != entities.PhaseInProgress || e.answered {
		e.mu.Unlock()
		return false
	}
	if !e.timer.Tick() {
		e.mu.Unlock()
		return false
	}

	e.logger.Debug("question timer expired", zap.Int("question_index", e.seq.Index()))
	_, events := e.resolveLocked(nil, true)
	e.mu.Unlock()

	e.dispatch(events)
	return true
}

// Advance moves past an answered question: to Completed when lives are
// gone or the bank is finished, otherwise to the next question.
// It reports whether a transition happened.
func (e *Engine) Advance() bool {
	e.mu.Lock()

	if e.phase != entities.PhaseAwaitingAdvance {
		e.logger.Debug("ignoring advance", zap.String("phase", string(e.phase)))
		e.mu.Unlock()
		return false
	}

	var events []event
	switch {
	case e.lives.Exhausted():
		events = e.completeLocked(entities.ReasonLivesExhausted)
	case e.seq.IsLast():
		events = e.completeLocked(entities.ReasonBankFinished)
	default:
		e.seq.Advance()
		e.selected = nil
		e.answered = false
		e.timer.Restart()
		e.phase = entities.PhaseInProgress
	}
	e.mu.Unlock()

	e.dispatch(events)
	return true
}

// Abandon tears the session down without a result and notifies OnBack.
// It reports whether the session was still running.
func (e *Engine) Abandon() bool {
	e.mu.Lock()

	if e.phase.Terminal() {
		e.mu.Unlock()
		return false
	}

	e.timer.Stop()
	e.seq.Finish()
	e.phase = entities.PhaseAbandoned
	close(e.done)
	state := e.stateLocked()
	e.mu.Unlock()

	e.logger.Debug("quiz session abandoned",
		zap.Int("question_index", state.CurrentIndex),
		zap.Int("score", state.Score),
	)
	e.dispatch([]event{{back: &state}})
	return true
}

// resolveLocked applies a verdict for the active question.
// selected is nil when the timer expired.
func (e *Engine) resolveLocked(selected *int, timedOut bool) (entities.AnswerOutcome, []event) {
	q, _ := e.seq.Current()
	isCorrect := selected != nil && q.IsCorrect(*selected)

	// The reward uses the combo from previous answers only.
	delta := e.scoring.ScoreFor(isCorrect, e.combo.Value())
	if isCorrect {
		e.combo.OnCorrect()
		e.correct++
	} else {
		e.combo.OnIncorrect()
		e.lives.OnIncorrect()
	}
	e.score += delta

	e.selected = selected
	e.answered = true
	e.timer.Stop()

	var chosen *int
	if selected != nil {
		c := *selected
		chosen = &c
	}

	outcome := entities.AnswerOutcome{
		SessionID:     e.id,
		QuestionIndex: e.seq.Index(),
		Selected:      chosen,
		CorrectIndex:  q.CorrectIndex,
		Explanation:   q.Explanation,
		IsCorrect:     isCorrect,
		TimedOut:      timedOut,
		ScoreDelta:    delta,
		ScoreAfter:    e.score,
		ComboAfter:    e.combo.Value(),
		LivesAfter:    e.lives.Remaining(),
		Final:         e.lives.Exhausted(),
	}

	events := []event{{outcome: &outcome}}
	if e.lives.Exhausted() {
		events = append(events, e.completeLocked(entities.ReasonLivesExhausted)...)
	} else {
		e.phase = entities.PhaseAwaitingAdvance
	}

	return outcome, events
}

// completeLocked moves to Completed. It must only be called from a
// non-terminal phase, which makes the result single-shot.
func (e *Engine) completeLocked(reason entities.CompletionReason) []event {
	e.phase = entities.PhaseCompleted
	e.timer.Stop()
	e.seq.Finish()
	close(e.done)

	result := entities.SessionResult{
		SessionID:      e.id,
		Score:          e.score,
		TotalQuestions: e.seq.Len(),
		Category:       e.category,
		CorrectAnswers: e.correct,
		MaxCombo:       e.combo.Max(),
		LivesLeft:      e.lives.Remaining(),
		Reason:         reason,
	}

	e.logger.Info("quiz session completed",
		zap.Int("score", result.Score),
		zap.Int("total_questions", result.TotalQuestions),
		zap.Int("correct_answers", result.CorrectAnswers),
		zap.String("reason", string(reason)),
	)

	return []event{{result: &result}}
}

func (e *Engine) stateLocked() entities.SessionState {
	var selected *int
	if e.selected != nil {
		s := *e.selected
		selected = &s
	}
	return entities.SessionState{
		SessionID:      e.id,
		Category:       e.category,
		TotalQuestions: e.seq.Len(),
		CurrentIndex:   e.seq.Index(),
		Score:          e.score,
		Combo:          e.combo.Value(),
		MaxCombo:       e.combo.Max(),
		CorrectAnswers: e.correct,
		Lives:          e.lives.Remaining(),
		SelectedAnswer: selected,
		Answered:       e.answered,
		TimeRemaining:  e.timer.Remaining(),
		Phase:          e.phase,
	}
}

func (e *Engine) dispatch(events []event) {
	for _, ev := range events {
		switch {
		case ev.outcome != nil:
			e.observer.OnAnswer(*ev.outcome)
		case ev.result != nil:
			e.observer.OnComplete(*ev.result)
		case ev.back != nil:
			e.observer.OnBack(*ev.back)
		}
	}
}
