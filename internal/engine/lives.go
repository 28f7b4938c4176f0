package engine

const DefaultStartingLives = 3

// LivesTracker counts the mistakes a learner can still afford.
type LivesTracker struct {
	remaining int
}

// NewLivesTracker creates a tracker starting at lives.
func NewLivesTracker(lives int) *LivesTracker {
	if lives < 0 {
		lives = 0
	}
	return &LivesTracker{remaining: lives}
}

// Remaining returns the lives left.
func (l *LivesTracker) Remaining() int { return l.remaining }

// OnIncorrect takes one life, never going below zero.
func (l *LivesTracker) OnIncorrect() {
	if l.remaining > 0 {
		l.remaining--
	}
}

// Exhausted reports whether no lives are left.
func (l *LivesTracker) Exhausted() bool {
	return l.remaining == 0
}
