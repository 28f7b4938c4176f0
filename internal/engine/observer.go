package engine

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

// Observer receives the events a session emits.
// Calls are made after the engine has released its lock, so an observer
// may call back into the engine.
type Observer interface {
	// OnAnswer is called for every judged answer, including timer expiry.
	OnAnswer(outcome entities.AnswerOutcome)
	// OnComplete is called exactly once when the session completes.
	OnComplete(result entities.SessionResult)
	// OnBack is called when the caller abandons the session.
	OnBack(state entities.SessionState)
}

// ObserverFuncs adapts plain functions to Observer.
// Nil fields are allowed; the event is then only logged.
type ObserverFuncs struct {
	Answer   func(entities.AnswerOutcome)
	Complete func(entities.SessionResult)
	Back     func(entities.SessionState)

	Logger *zap.Logger
}

func (f ObserverFuncs) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

func (f ObserverFuncs) OnAnswer(outcome entities.AnswerOutcome) {
	if f.Answer == nil {
		return
	}
	f.Answer(outcome)
}

func (f ObserverFuncs) OnComplete(result entities.SessionResult) {
	if f.Complete == nil {
		f.logger().Warn("quiz completed but no completion handler is registered",
			zap.String("session_id", result.SessionID),
			zap.Int("score", result.Score),
			zap.Int("total_questions", result.TotalQuestions),
			zap.String("category", result.Category),
		)
		return
	}
	f.Complete(result)
}

func (f ObserverFuncs) OnBack(state entities.SessionState) {
	if f.Back == nil {
		f.logger().Warn("quiz abandoned but no back handler is registered",
			zap.String("session_id", state.SessionID),
		)
		return
	}
	f.Back(state)
}

// ChannelObserver forwards events onto buffered channels.
// Sends never block; an event is dropped when its channel is full.
type ChannelObserver struct {
	Answers   chan entities.AnswerOutcome
	Results   chan entities.SessionResult
	Abandoned chan entities.SessionState
}

// NewChannelObserver creates a ChannelObserver with the given buffer size.
func NewChannelObserver(buffer int) *ChannelObserver {
	return &ChannelObserver{
		Answers:   make(chan entities.AnswerOutcome, buffer),
		Results:   make(chan entities.SessionResult, 1),
		Abandoned: make(chan entities.SessionState, 1),
	}
}

func (c *ChannelObserver) OnAnswer(outcome entities.AnswerOutcome) {
	select {
	case c.Answers <- outcome:
	default:
	}
}

func (c *ChannelObserver) OnComplete(result entities.SessionResult) {
	select {
	case c.Results <- result:
	default:
	}
}

func (c *ChannelObserver) OnBack(state entities.SessionState) {
	select {
	case c.Abandoned <- state:
	default:
	}
}
