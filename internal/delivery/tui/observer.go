package tui

import "github.com/aliskhannn/quizmentor/internal/domain/entities"

// recorder keeps the latest session events. The engine calls it on the
// goroutine that drives the session, which is always the Update loop.
type recorder struct {
	outcome   *entities.AnswerOutcome
	result    *entities.SessionResult
	abandoned bool
}

func (r *recorder) OnAnswer(out entities.AnswerOutcome) {
	r.outcome = &out
}

func (r *recorder) OnComplete(res entities.SessionResult) {
	r.result = &res
}

func (r *recorder) OnBack(entities.SessionState) {
	r.abandoned = true
}
