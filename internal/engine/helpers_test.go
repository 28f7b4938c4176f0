package engine

import (
	"fmt"
	"sync"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

// recorder is an Observer that keeps every event it receives.
type recorder struct {
	mu       sync.Mutex
	outcomes []entities.AnswerOutcome
	results  []entities.SessionResult
	backs    []entities.SessionState
}

func (r *recorder) OnAnswer(o entities.AnswerOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recorder) OnComplete(res entities.SessionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recorder) OnBack(s entities.SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backs = append(r.backs, s)
}

func (r *recorder) resultCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func (r *recorder) lastResult() entities.SessionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results[len(r.results)-1]
}

func (r *recorder) backCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.backs)
}

// makeQuestions builds n valid four-option questions; the right answer is always option 0.
func makeQuestions(n int) []entities.Question {
	qs := make([]entities.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, entities.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Prompt:       fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"right", "wrong a", "wrong b", "wrong c"},
			CorrectIndex: 0,
		})
	}
	return qs
}

// manualOptions returns default options with caller-driven ticks.
func manualOptions(timerSeconds int) Options {
	opts := DefaultOptions()
	opts.TimerSeconds = timerSeconds
	opts.TickInterval = 0
	return opts
}

const (
	right = 0
	wrong = 1
)
