package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
	"github.com/aliskhannn/quizmentor/internal/engine"
)

// Session is a running quiz owned by one chat user.
type Session struct {
	UserID    int64
	ChatID    int64
	Engine    *engine.Engine
	StartedAt time.Time

	mu         sync.Mutex
	messageID  int
	question   entities.Question
	lastActive time.Time
	advance    *time.Timer
	cancel     context.CancelFunc
}

// NewSession wraps a running engine. cancel stops the engine's background work.
func NewSession(userID, chatID int64, e *engine.Engine, cancel context.CancelFunc) *Session {
	now := time.Now()
	return &Session{
		UserID:     userID,
		ChatID:     chatID,
		Engine:     e,
		StartedAt:  now,
		lastActive: now,
		cancel:     cancel,
	}
}

// ID returns the engine session ID.
func (s *Session) ID() string { return s.Engine.ID() }

// Touch records user activity.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

// LastActive returns the time of the last recorded activity.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// SetMessageID remembers the chat message that shows the quiz.
func (s *Session) SetMessageID(id int) {
	s.mu.Lock()
	s.messageID = id
	s.mu.Unlock()
}

// MessageID returns the chat message that shows the quiz, 0 if none.
func (s *Session) MessageID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageID
}

// SetQuestion remembers the question currently shown to the user.
func (s *Session) SetQuestion(q entities.Question) {
	s.mu.Lock()
	s.question = q
	s.mu.Unlock()
}

// Question returns the question currently shown to the user.
func (s *Session) Question() entities.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.question
}

// ScheduleAdvance runs fn after d, replacing any pending call.
func (s *Session) ScheduleAdvance(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.advance != nil {
		s.advance.Stop()
	}
	s.advance = time.AfterFunc(d, fn)
}

// StopAdvance cancels a pending advance. It reports whether one was pending.
func (s *Session) StopAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.advance == nil {
		return false
	}
	stopped := s.advance.Stop()
	s.advance = nil
	return stopped
}

// Release stops pending work tied to the session.
func (s *Session) Release() {
	s.StopAdvance()
	if s.cancel != nil {
		s.cancel()
	}
}

// SessionStorage keeps at most one running session per user in memory.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*Session),
	}
}

// Put stores s and returns the session it replaced, if any.
func (st *SessionStorage) Put(s *Session) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	prev := st.sessions[s.UserID]
	st.sessions[s.UserID] = s
	return prev
}

// Get returns the running session of a user.
func (st *SessionStorage) Get(userID int64) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[userID]
	return s, ok
}

// Delete removes the user's session only if it is still sessionID.
// A newer session stored under the same user is left alone.
func (st *SessionStorage) Delete(userID int64, sessionID string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	if !ok || s.ID() != sessionID {
		return false
	}
	delete(st.sessions, userID)
	return true
}

// IdleSince returns sessions without activity since cutoff.
func (st *SessionStorage) IdleSince(cutoff time.Time) []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	var idle []*Session
	for _, s := range st.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
		}
	}
	return idle
}

// All returns every stored session.
func (st *SessionStorage) All() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	all := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		all = append(all, s)
	}
	return all
}

// Len returns the number of stored sessions.
func (st *SessionStorage) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
