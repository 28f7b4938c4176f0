package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/config"
	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/storage"
)

var errUnknownCategory = errors.New("unknown category")

type fakeQuestions struct {
	bank map[string][]entities.Question
}

func newFakeQuestions(category string, n int) *fakeQuestions {
	qs := make([]entities.Question, n)
	for i := range qs {
		qs[i] = entities.Question{
			ID:           fmt.Sprintf("q-%d", i),
			Prompt:       fmt.Sprintf("Question %d?", i),
			Options:      []string{"right", "wrong"},
			CorrectIndex: 0,
			Category:     category,
		}
	}
	return &fakeQuestions{bank: map[string][]entities.Question{category: qs}}
}

func (f *fakeQuestions) Categories() []string {
	var names []string
	for name := range f.bank {
		names = append(names, name)
	}
	return names
}

func (f *fakeQuestions) GetByCategory(category string) ([]entities.Question, error) {
	for name, qs := range f.bank {
		if strings.EqualFold(name, category) {
			return append([]entities.Question(nil), qs...), nil
		}
	}
	return nil, errUnknownCategory
}

func (f *fakeQuestions) DisplayName(category string) (string, bool) {
	for name := range f.bank {
		if strings.EqualFold(name, category) {
			return name, true
		}
	}
	return "", false
}

type fakeResults struct {
	mu      sync.Mutex
	saved   []*entities.QuizResult
	failErr error
}

func (f *fakeResults) Record(_ context.Context, res *entities.QuizResult) (*entities.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.saved = append(f.saved, res)
	stats := entities.NewUserStats(res.UserID)
	for _, r := range f.saved {
		if r.UserID == res.UserID {
			stats.Apply(r)
		}
	}
	return stats, nil
}

func (f *fakeResults) Stats(_ context.Context, userID int64) (*entities.UserStats, error) {
	return entities.NewUserStats(userID), nil
}

func (f *fakeResults) Recent(_ context.Context, _ int64, _ int) ([]*entities.QuizResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entities.QuizResult(nil), f.saved...), nil
}

func (f *fakeResults) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type fakeNotifier struct {
	mu        sync.Mutex
	questions []entities.Question
	outcomes  []entities.AnswerOutcome
	results   []*entities.QuizResult
	stats     []*entities.UserStats
	abandoned []entities.SessionState
	shown     chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{shown: make(chan struct{}, 16)}
}

func (n *fakeNotifier) ShowQuestion(_ *storage.Session, q entities.Question, _ entities.SessionState) {
	n.mu.Lock()
	n.questions = append(n.questions, q)
	n.mu.Unlock()
	n.shown <- struct{}{}
}

func (n *fakeNotifier) ShowOutcome(_ *storage.Session, _ entities.Question, out entities.AnswerOutcome) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outcomes = append(n.outcomes, out)
}

func (n *fakeNotifier) ShowResult(_ *storage.Session, res *entities.QuizResult, stats *entities.UserStats) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results = append(n.results, res)
	n.stats = append(n.stats, stats)
}

func (n *fakeNotifier) ShowAbandoned(_ *storage.Session, st entities.SessionState) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.abandoned = append(n.abandoned, st)
}

func (n *fakeNotifier) resultCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.results)
}

func (n *fakeNotifier) abandonedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.abandoned)
}

// firstN keeps bank order so tests can predict questions.
type firstN struct{}

func (firstN) Select(qs []entities.Question, limit int) []entities.Question {
	if limit > 0 && len(qs) > limit {
		return qs[:limit]
	}
	return qs
}

func testEngineConfig() config.Engine {
	return config.Engine{
		StartingLives: 3,
		BaseReward:    10,
		ComboBonus:    5,
		QuizLength:    10,
	}
}

func newTestService(t *testing.T, cfg config.Engine, questions *fakeQuestions) (*QuizService, *fakeResults, *fakeNotifier) {
	t.Helper()
	results := &fakeResults{}
	notifier := newFakeNotifier()
	svc := NewQuizService(questions, results, storage.NewSessionStorage(), cfg, zap.NewNop())
	svc.selector = firstN{}
	svc.SetNotifier(notifier)
	return svc, results, notifier
}

// TestStartQuizUnknownCategory verifies repository errors are returned.
func TestStartQuizUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))
	if _, err := svc.StartQuiz(context.Background(), 1, 1, "Rust"); !errors.Is(err, errUnknownCategory) {
		t.Fatalf("expected unknown category, got %v", err)
	}
}

// TestStartQuizLimitsLength verifies QuizLength caps the bank and the display name is used.
func TestStartQuizLimitsLength(t *testing.T) {
	cfg := testEngineConfig()
	cfg.QuizLength = 2
	svc, _, _ := newTestService(t, cfg, newFakeQuestions("Go", 5))

	sess, err := svc.StartQuiz(context.Background(), 1, 1, "go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	st := sess.Engine.State()
	if st.TotalQuestions != 2 || st.Category != "Go" {
		t.Fatalf("unexpected state: %+v", st)
	}
	if sess.Question().ID != "q-0" {
		t.Fatalf("expected first question remembered, got %q", sess.Question().ID)
	}
}

// TestFullSessionRecordsResult plays a whole quiz with manual advances.
func TestFullSessionRecordsResult(t *testing.T) {
	svc, results, notifier := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))

	sess, err := svc.StartQuiz(context.Background(), 7, 70, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := sess.ID()

	for i := 0; i < 3; i++ {
		out, err := svc.Answer(7, id, i, 0)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if !out.IsCorrect {
			t.Fatalf("expected correct answer %d", i)
		}
		if err := svc.Continue(7, id); err != nil {
			t.Fatalf("continue %d: %v", i, err)
		}
	}

	if results.count() != 1 || notifier.resultCount() != 1 {
		t.Fatalf("expected one stored and shown result, got %d/%d", results.count(), notifier.resultCount())
	}
	res := notifier.results[0]
	if res.UserID != 7 || res.Score != 10+15+20 || res.Reason != entities.ReasonBankFinished {
		t.Fatalf("unexpected result: %+v", res)
	}
	if notifier.stats[0] == nil || notifier.stats[0].TotalXP != res.Score {
		t.Fatalf("expected stats in result notification")
	}
	if len(notifier.outcomes) != 3 || len(notifier.questions) != 2 {
		t.Fatalf("expected 3 outcomes and 2 follow-up questions, got %d/%d",
			len(notifier.outcomes), len(notifier.questions))
	}
	if _, err := svc.Session(7); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected session removed, got %v", err)
	}
}

// TestAnswerGuards verifies stale and duplicate callbacks are rejected.
func TestAnswerGuards(t *testing.T) {
	svc, _, _ := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))

	if _, err := svc.Answer(1, "missing", 0, 0); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected no session, got %v", err)
	}

	sess, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Answer(1, "other", 0, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("expected stale session, got %v", err)
	}
	if _, err := svc.Answer(1, sess.ID(), 2, 0); !errors.Is(err, ErrStaleQuestion) {
		t.Fatalf("expected stale question, got %v", err)
	}
	if _, err := svc.Answer(1, sess.ID(), 0, 0); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := svc.Answer(1, sess.ID(), 0, 1); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected already answered, got %v", err)
	}
	if sess.Engine.State().Lives != 3 {
		t.Fatalf("duplicate answer cost a life")
	}
}

// TestLateAnswerAfterAdvanceIsStale verifies a tap for a question that was
// advanced past is not judged against the next question.
func TestLateAnswerAfterAdvanceIsStale(t *testing.T) {
	svc, _, _ := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))

	sess, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Answer(1, sess.ID(), 0, 0); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := svc.Continue(1, sess.ID()); err != nil {
		t.Fatalf("continue: %v", err)
	}

	if _, err := svc.Answer(1, sess.ID(), 0, 1); !errors.Is(err, ErrStaleQuestion) {
		t.Fatalf("expected stale question, got %v", err)
	}
	st := sess.Engine.State()
	if st.CurrentIndex != 1 || st.Answered || st.Lives != 3 || st.Combo != 1 {
		t.Fatalf("late answer changed the next question: %+v", st)
	}
}

// TestAnswerInvalidOption verifies a bad option is reported as such.
func TestAnswerInvalidOption(t *testing.T) {
	svc, _, _ := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 2))

	sess, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Answer(1, sess.ID(), 0, 7); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected invalid option, got %v", err)
	}
	if sess.Engine.State().Answered {
		t.Fatalf("invalid option was recorded")
	}
	if _, err := svc.Answer(1, sess.ID(), 0, 0); err != nil {
		t.Fatalf("answer after invalid option: %v", err)
	}
}

// TestLivesExhaustedEndsWithoutContinue verifies the last miss finishes the quiz at once.
func TestLivesExhaustedEndsWithoutContinue(t *testing.T) {
	cfg := testEngineConfig()
	cfg.StartingLives = 1
	svc, results, notifier := newTestService(t, cfg, newFakeQuestions("Go", 3))

	sess, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err := svc.Answer(1, sess.ID(), 0, 1)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !out.Final {
		t.Fatalf("expected final outcome")
	}
	if results.count() != 1 || notifier.results[0].Reason != entities.ReasonLivesExhausted {
		t.Fatalf("expected lives exhausted result")
	}
}

// TestAutoAdvance verifies the next question is shown after the delay.
func TestAutoAdvance(t *testing.T) {
	cfg := testEngineConfig()
	cfg.AdvanceDelay = 5 * time.Millisecond
	svc, _, notifier := newTestService(t, cfg, newFakeQuestions("Go", 2))

	sess, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Answer(1, sess.ID(), 0, 0); err != nil {
		t.Fatalf("answer: %v", err)
	}

	select {
	case <-notifier.shown:
	case <-time.After(2 * time.Second):
		t.Fatalf("next question was not shown")
	}
	if got := sess.Engine.State().CurrentIndex; got != 1 {
		t.Fatalf("expected second question, got %d", got)
	}
	if sess.Question().ID != "q-1" {
		t.Fatalf("expected q-1 remembered, got %q", sess.Question().ID)
	}
}

// TestStopAbandonsSession verifies /stop tears the session down without a result.
func TestStopAbandonsSession(t *testing.T) {
	svc, results, notifier := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))

	if err := svc.Stop(1); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected no session, got %v", err)
	}
	if _, err := svc.StartQuiz(context.Background(), 1, 1, "Go"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.Stop(1); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if notifier.abandonedCount() != 1 || results.count() != 0 {
		t.Fatalf("expected abandon without result")
	}
	if _, err := svc.Session(1); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected session removed")
	}
}

// TestLeaveChecksSessionID verifies a stop button from an old message is ignored.
func TestLeaveChecksSessionID(t *testing.T) {
	svc, _, notifier := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))

	sess, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.Leave(1, "old-session"); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("expected stale session, got %v", err)
	}
	if notifier.abandonedCount() != 0 {
		t.Fatalf("expected session to keep running")
	}
	if err := svc.Leave(1, sess.ID()); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if notifier.abandonedCount() != 1 {
		t.Fatalf("expected session abandoned")
	}
}

// TestStartQuizReplacesRunningSession verifies a user never has two sessions.
func TestStartQuizReplacesRunningSession(t *testing.T) {
	svc, _, notifier := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))

	first, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	second, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}

	if first.Engine.State().Phase != entities.PhaseAbandoned {
		t.Fatalf("expected first session abandoned")
	}
	got, err := svc.Session(1)
	if err != nil || got != second {
		t.Fatalf("expected second session active")
	}
	if notifier.abandonedCount() != 1 {
		t.Fatalf("expected one abandon notification")
	}
	if _, err := svc.Answer(1, first.ID(), 0, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("expected old callbacks to be stale, got %v", err)
	}
}

// TestRecordFailureStillShowsResult verifies the player sees the result when saving fails.
func TestRecordFailureStillShowsResult(t *testing.T) {
	svc, results, notifier := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 1))
	results.failErr = errors.New("db down")

	sess, err := svc.StartQuiz(context.Background(), 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	svc.Answer(1, sess.ID(), 0, 0)
	svc.Continue(1, sess.ID())

	if notifier.resultCount() != 1 || notifier.stats[0] != nil {
		t.Fatalf("expected result shown without stats")
	}
}

// TestContextCancelAbandonsSession verifies shutdown tears sessions down.
func TestContextCancelAbandonsSession(t *testing.T) {
	svc, _, notifier := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))

	ctx, cancel := context.WithCancel(context.Background())
	sess, err := svc.StartQuiz(ctx, 1, 1, "Go")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	cancel()

	select {
	case <-sess.Engine.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("session not abandoned")
	}
	deadline := time.Now().Add(2 * time.Second)
	for notifier.abandonedCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if notifier.abandonedCount() != 1 {
		t.Fatalf("expected abandon notification")
	}
}

// TestJanitorSweep verifies idle sessions are abandoned and active ones kept.
func TestJanitorSweep(t *testing.T) {
	svc, _, notifier := newTestService(t, testEngineConfig(), newFakeQuestions("Go", 3))

	idle, _ := svc.StartQuiz(context.Background(), 1, 1, "Go")
	active, _ := svc.StartQuiz(context.Background(), 2, 2, "Go")

	now := time.Now()
	idle.Touch(now.Add(-time.Hour))
	active.Touch(now)

	j := NewJanitor(svc.sessions, "@every 1m", 30*time.Minute, zap.NewNop())
	j.now = func() time.Time { return now }

	if n := j.Sweep(); n != 1 {
		t.Fatalf("expected one session swept, got %d", n)
	}
	if idle.Engine.State().Phase != entities.PhaseAbandoned {
		t.Fatalf("expected idle session abandoned")
	}
	if active.Engine.State().Phase.Terminal() {
		t.Fatalf("expected active session kept")
	}
	if notifier.abandonedCount() != 1 {
		t.Fatalf("expected one abandon notification")
	}
}

// TestJanitorDisabled verifies a zero TTL never sweeps.
func TestJanitorDisabled(t *testing.T) {
	st := storage.NewSessionStorage()
	j := NewJanitor(st, "@every 1m", 0, zap.NewNop())
	if j.Sweep() != 0 {
		t.Fatalf("expected nothing swept")
	}
}

// TestJanitorStartRejectsBadSchedule verifies cron spec errors are returned.
func TestJanitorStartRejectsBadSchedule(t *testing.T) {
	j := NewJanitor(storage.NewSessionStorage(), "not a schedule", time.Minute, zap.NewNop())
	if err := j.Start(context.Background()); err == nil {
		t.Fatalf("expected schedule error")
	}
}
