package engine_test

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/engine"
)

func TestQuizSessionFeatures(t *testing.T) {
	featuresPath := filepath.Join("..", "..", "features")
	options := godog.Options{
		Format:    "progress",
		Paths:     []string{featuresPath},
		Output:    io.Discard,
		TestingT:  t,
		Randomize: 0,
	}

	suite := godog.TestSuite{
		Name:                "quiz-session",
		ScenarioInitializer: initializeScenario,
		Options:             &options,
	}

	if suite.Run() != 0 {
		t.Fatalf("quiz session features failed")
	}
}

type sessionState struct {
	category  string
	questions []entities.Question
	opts      engine.Options
	session   *engine.Engine
	results   []entities.SessionResult
	rejected  bool
}

func initializeScenario(ctx *godog.ScenarioContext) {
	s := &sessionState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*s = sessionState{opts: engine.DefaultOptions()}
		s.opts.TickInterval = 0
		return ctx, nil
	})

	ctx.Step(`^a quiz "([^"]*)" with (\d+) questions?$`, s.aQuizWithQuestions)
	ctx.Step(`^a quiz "([^"]*)" with no questions$`, s.aQuizWithNoQuestions)
	ctx.Step(`^the session starts with (\d+) lives$`, s.theSessionStartsWithLives)
	ctx.Step(`^the question timer is (\d+) seconds?$`, s.theQuestionTimerIs)
	ctx.Step(`^I answer correctly$`, s.iAnswerCorrectly)
	ctx.Step(`^I answer incorrectly$`, s.iAnswerIncorrectly)
	ctx.Step(`^I answer correctly (\d+) times in a row$`, s.iAnswerCorrectlyTimes)
	ctx.Step(`^I answer incorrectly (\d+) times in a row$`, s.iAnswerIncorrectlyTimes)
	ctx.Step(`^I advance$`, s.iAdvance)
	ctx.Step(`^(\d+) seconds? pass(?:es)? without an answer$`, s.secondsPassWithoutAnswer)
	ctx.Step(`^the session is completed$`, s.thePhaseIs(entities.PhaseCompleted))
	ctx.Step(`^the session is awaiting advance$`, s.thePhaseIs(entities.PhaseAwaitingAdvance))
	ctx.Step(`^the score is (\d+)$`, s.theScoreIs)
	ctx.Step(`^the combo is (\d+)$`, s.theComboIs)
	ctx.Step(`^(\d+) lives? remains?$`, s.livesRemain)
	ctx.Step(`^the completion result is (\d+) points for (\d+) questions in "([^"]*)"$`, s.theCompletionResultIs)
	ctx.Step(`^exactly one result was emitted$`, s.exactlyOneResult)
	ctx.Step(`^the last answer was rejected$`, s.theLastAnswerWasRejected)
	ctx.Step(`^the fallback questions are in play$`, s.theFallbackQuestionsAreInPlay)
}

func (s *sessionState) aQuizWithQuestions(category string, n int) error {
	s.category = category
	for i := 0; i < n; i++ {
		s.questions = append(s.questions, entities.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Prompt:       fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
		})
	}
	return nil
}

func (s *sessionState) aQuizWithNoQuestions(category string) error {
	s.category = category
	s.questions = nil
	return nil
}

func (s *sessionState) theSessionStartsWithLives(n int) error {
	s.opts.StartingLives = n
	return nil
}

func (s *sessionState) theQuestionTimerIs(seconds int) error {
	s.opts.TimerSeconds = seconds
	return nil
}

// sess creates the session on first use so Given steps can configure it.
func (s *sessionState) sess() *engine.Engine {
	if s.session == nil {
		s.session = engine.New(s.opts, s.category, s.questions, engine.ObserverFuncs{
			Complete: func(r entities.SessionResult) { s.results = append(s.results, r) },
		}, nil)
	}
	return s.session
}

func (s *sessionState) answer(correct bool) error {
	q, ok := s.sess().Current()
	if !ok {
		return fmt.Errorf("no current question")
	}
	idx := q.CorrectIndex
	if !correct {
		idx = (q.CorrectIndex + 1) % len(q.Options)
	}
	_, accepted := s.sess().SubmitAnswer(idx)
	s.rejected = !accepted
	return nil
}

func (s *sessionState) iAnswerCorrectly() error   { return s.answer(true) }
func (s *sessionState) iAnswerIncorrectly() error { return s.answer(false) }

func (s *sessionState) answerTimes(correct bool, n int) error {
	for i := 0; i < n; i++ {
		if i > 0 {
			s.sess().Advance()
		}
		if err := s.answer(correct); err != nil {
			return err
		}
		if s.rejected {
			return fmt.Errorf("answer %d was rejected", i+1)
		}
	}
	return nil
}

func (s *sessionState) iAnswerCorrectlyTimes(n int) error   { return s.answerTimes(true, n) }
func (s *sessionState) iAnswerIncorrectlyTimes(n int) error { return s.answerTimes(false, n) }

func (s *sessionState) iAdvance() error {
	s.sess().Advance()
	return nil
}

func (s *sessionState) secondsPassWithoutAnswer(n int) error {
	for i := 0; i < n; i++ {
		s.sess().Tick()
	}
	return nil
}

func (s *sessionState) thePhaseIs(want entities.Phase) func() error {
	return func() error {
		if got := s.sess().State().Phase; got != want {
			return fmt.Errorf("expected phase %s, got %s", want, got)
		}
		return nil
	}
}

func (s *sessionState) theScoreIs(want int) error {
	if got := s.sess().State().Score; got != want {
		return fmt.Errorf("expected score %d, got %d", want, got)
	}
	return nil
}

func (s *sessionState) theComboIs(want int) error {
	if got := s.sess().State().Combo; got != want {
		return fmt.Errorf("expected combo %d, got %d", want, got)
	}
	return nil
}

func (s *sessionState) livesRemain(want int) error {
	if got := s.sess().State().Lives; got != want {
		return fmt.Errorf("expected %d lives, got %d", want, got)
	}
	return nil
}

func (s *sessionState) theCompletionResultIs(score, total int, category string) error {
	if len(s.results) == 0 {
		return fmt.Errorf("no result emitted")
	}
	r := s.results[len(s.results)-1]
	if r.Score != score || r.TotalQuestions != total || r.Category != category {
		return fmt.Errorf("expected (%d, %d, %q), got (%d, %d, %q)",
			score, total, category, r.Score, r.TotalQuestions, r.Category)
	}
	return nil
}

func (s *sessionState) exactlyOneResult() error {
	if len(s.results) != 1 {
		return fmt.Errorf("expected one result, got %d", len(s.results))
	}
	return nil
}

func (s *sessionState) theLastAnswerWasRejected() error {
	if !s.rejected {
		return fmt.Errorf("expected the last answer to be rejected")
	}
	return nil
}

func (s *sessionState) theFallbackQuestionsAreInPlay() error {
	if !s.sess().UsedFallback() {
		return fmt.Errorf("expected fallback questions")
	}
	return nil
}
