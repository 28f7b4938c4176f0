package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/config"
	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/engine"
	"github.com/aliskhannn/quizmentor/internal/storage"
)

var (
	ErrNoActiveSession = errors.New("no active quiz session")
	ErrStaleSession    = errors.New("quiz session is no longer active")
	ErrStaleQuestion   = errors.New("question is no longer active")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrInvalidOption   = errors.New("no such answer option")
)

const persistTimeout = 5 * time.Second

// QuizService runs quiz sessions for chat users.
type QuizService struct {
	questions QuestionRepository
	results   ResultRecorder
	sessions  *storage.SessionStorage
	notifier  QuizNotifier
	selector  QuestionPicker
	cfg       config.Engine
	logger    *zap.Logger
}

// NewQuizService creates a new quiz service.
func NewQuizService(
	questions QuestionRepository,
	results ResultRecorder,
	sessions *storage.SessionStorage,
	cfg config.Engine,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		questions: questions,
		results:   results,
		sessions:  sessions,
		selector:  NewQuestionSelector(),
		cfg:       cfg,
		logger:    logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *QuizService) SetNotifier(notifier QuizNotifier) {
	s.notifier = notifier
}

// Categories returns the available categories.
func (s *QuizService) Categories() []string {
	return s.questions.Categories()
}

// StartQuiz starts a new session for the user, abandoning any running one.
// The session stays alive until it completes, is stopped, or ctx is done.
func (s *QuizService) StartQuiz(ctx context.Context, userID, chatID int64, category string) (*storage.Session, error) {
	questions, err := s.questions.GetByCategory(category)
	if err != nil {
		return nil, err
	}
	if name, ok := s.questions.DisplayName(category); ok {
		category = name
	}

	questions = s.selector.Select(questions, s.cfg.QuizLength)

	if prev, ok := s.sessions.Get(userID); ok {
		s.logger.Debug("replacing running session",
			zap.Int64("user_id", userID),
			zap.String("session_id", prev.ID()),
		)
		prev.Engine.Abandon()
	}

	sessCtx, cancel := context.WithCancel(ctx)

	var sess *storage.Session
	observer := engine.ObserverFuncs{
		Answer:   func(out entities.AnswerOutcome) { s.onAnswer(sess, out) },
		Complete: func(res entities.SessionResult) { s.onComplete(sess, res) },
		Back:     func(st entities.SessionState) { s.onBack(sess, st) },
		Logger:   s.logger,
	}

	e := engine.New(s.cfg.SessionOptions(), category, questions, observer, s.logger.With(zap.Int64("user_id", userID)))
	sess = storage.NewSession(userID, chatID, e, cancel)
	s.sessions.Put(sess)

	q, _ := e.Current()
	sess.SetQuestion(q)
	e.Start(sessCtx)

	s.logger.Info("quiz started",
		zap.Int64("user_id", userID),
		zap.String("session_id", e.ID()),
		zap.String("category", e.Category()),
		zap.Int("questions", e.State().TotalQuestions),
	)

	return sess, nil
}

// Session returns the user's running session.
func (s *QuizService) Session(userID int64) (*storage.Session, error) {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	return sess, nil
}

// Answer submits an option for the question at questionIndex.
func (s *QuizService) Answer(userID int64, sessionID string, questionIndex, option int) (entities.AnswerOutcome, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return entities.AnswerOutcome{}, err
	}
	sess.Touch(time.Now())

	outcome, err := sess.Engine.SubmitAnswerAt(questionIndex, option)
	switch {
	case err == nil:
		return outcome, nil
	case errors.Is(err, engine.ErrWrongQuestion):
		return entities.AnswerOutcome{}, ErrStaleQuestion
	case errors.Is(err, engine.ErrInvalidOption):
		return entities.AnswerOutcome{}, ErrInvalidOption
	case errors.Is(err, engine.ErrSessionOver):
		return entities.AnswerOutcome{}, ErrStaleSession
	default:
		return entities.AnswerOutcome{}, ErrAlreadyAnswered
	}
}

// Continue moves the user's session past an answered question.
func (s *QuizService) Continue(userID int64, sessionID string) error {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return err
	}
	sess.Touch(time.Now())
	sess.StopAdvance()
	s.advance(sess)
	return nil
}

// Stop abandons the user's running session.
func (s *QuizService) Stop(userID int64) error {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return ErrNoActiveSession
	}
	if !sess.Engine.Abandon() {
		return ErrStaleSession
	}
	return nil
}

// Leave abandons the session only if it is still sessionID.
func (s *QuizService) Leave(userID int64, sessionID string) error {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return err
	}
	if !sess.Engine.Abandon() {
		return ErrStaleSession
	}
	return nil
}

// Stats returns the user's aggregated stats.
func (s *QuizService) Stats(ctx context.Context, userID int64) (*entities.UserStats, error) {
	return s.results.Stats(ctx, userID)
}

// History returns the user's latest results.
func (s *QuizService) History(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	return s.results.Recent(ctx, userID, limit)
}

// Shutdown abandons every running session.
func (s *QuizService) Shutdown() {
	for _, sess := range s.sessions.All() {
		sess.Engine.Abandon()
	}
}

func (s *QuizService) lookup(userID int64, sessionID string) (*storage.Session, error) {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	if sess.ID() != sessionID {
		return nil, ErrStaleSession
	}
	return sess, nil
}

func (s *QuizService) advance(sess *storage.Session) {
	if !sess.Engine.Advance() {
		return
	}
	q, ok := sess.Engine.Current()
	if !ok {
		// Completed; onComplete has the rest.
		return
	}
	sess.SetQuestion(q)
	if s.notifier != nil {
		s.notifier.ShowQuestion(sess, q, sess.Engine.State())
	}
}

func (s *QuizService) onAnswer(sess *storage.Session, out entities.AnswerOutcome) {
	if s.notifier != nil {
		s.notifier.ShowOutcome(sess, sess.Question(), out)
	}
	if out.Final || s.cfg.AdvanceDelay <= 0 {
		return
	}
	sess.ScheduleAdvance(s.cfg.AdvanceDelay, func() { s.advance(sess) })
}

func (s *QuizService) onComplete(sess *storage.Session, res entities.SessionResult) {
	s.sessions.Delete(sess.UserID, sess.ID())
	sess.Release()

	stored := entities.NewQuizResult(sess.UserID, res, sess.StartedAt)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var stats *entities.UserStats
	if s.results != nil {
		var err error
		stats, err = s.results.Record(ctx, stored)
		if err != nil {
			s.logger.Error("failed to save quiz result",
				zap.Int64("user_id", sess.UserID),
				zap.String("session_id", res.SessionID),
				zap.Error(err),
			)
		}
	}

	if s.notifier != nil {
		s.notifier.ShowResult(sess, stored, stats)
	}
}

func (s *QuizService) onBack(sess *storage.Session, st entities.SessionState) {
	s.sessions.Delete(sess.UserID, sess.ID())
	sess.Release()

	s.logger.Info("quiz abandoned",
		zap.Int64("user_id", sess.UserID),
		zap.String("session_id", st.SessionID),
		zap.Int("question_index", st.CurrentIndex),
	)

	if s.notifier != nil {
		s.notifier.ShowAbandoned(sess, st)
	}
}
