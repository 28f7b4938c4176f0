package engine

// SessionTimer is a per-question countdown with one-second resolution.
// A zero-value timer is disabled and ignores every call.
type SessionTimer struct {
	seconds   int
	remaining int
	running   bool
}

// NewSessionTimer returns a timer for seconds per question.
// Non-positive values disable it.
func NewSessionTimer(seconds int) *SessionTimer {
	if seconds <= 0 {
		return &SessionTimer{}
	}
	return &SessionTimer{seconds: seconds, remaining: seconds}
}

// Enabled reports whether the timer was configured.
func (t *SessionTimer) Enabled() bool { return t.seconds > 0 }

// Running reports whether the countdown is active.
func (t *SessionTimer) Running() bool { return t.running }

// Remaining returns the seconds left, or nil when the timer is disabled.
func (t *SessionTimer) Remaining() *int {
	if !t.Enabled() {
		return nil
	}
	r := t.remaining
	return &r
}

// Restart resets the countdown to its full length and starts it.
func (t *SessionTimer) Restart() {
	if !t.Enabled() {
		return
	}
	t.remaining = t.seconds
	t.running = true
}

// Stop freezes the countdown.
func (t *SessionTimer) Stop() {
	t.running = false
}

// Tick advances the countdown by one second and reports whether it just expired.
// Once expired the timer stops, so later ticks never fire twice.
func (t *SessionTimer) Tick() bool {
	if !t.running {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.running = false
		return true
	}
	return false
}
