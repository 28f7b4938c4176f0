package entities

// Phase is the state of a quiz session.
type Phase string

const (
	PhaseInProgress      Phase = "in_progress"      // waiting for an answer to the current question
	PhaseAwaitingAdvance Phase = "awaiting_advance" // current question answered, waiting for advance
	PhaseCompleted       Phase = "completed"        // finished, result emitted
	PhaseAbandoned       Phase = "abandoned"        // torn down by the caller, no result
)

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAbandoned
}

// CompletionReason explains why a session completed.
type CompletionReason string

const (
	ReasonBankFinished   CompletionReason = "bank_finished"
	ReasonLivesExhausted CompletionReason = "lives_exhausted"
)

// SessionState is a snapshot of a running session.
type SessionState struct {
	SessionID      string // unique session ID
	Category       string // category label
	TotalQuestions int    // number of questions in the bank
	CurrentIndex   int    // index of the active question
	Score          int    // accumulated score
	Combo          int    // consecutive correct answers
	MaxCombo       int    // longest streak in this session
	CorrectAnswers int    // number of correct answers so far
	Lives          int    // remaining lives
	SelectedAnswer *int   // option chosen for the active question, nil if none
	Answered       bool   // whether the active question has been resolved
	TimeRemaining  *int   // seconds left on the question timer, nil if no timer
	Phase          Phase  // current phase
}

// AnswerOutcome describes how a single submission changed the session.
type AnswerOutcome struct {
	SessionID     string // session the answer belongs to
	QuestionIndex int    // index of the answered question
	Selected      *int   // chosen option, nil when the timer expired
	CorrectIndex  int    // index of the right option
	Explanation   string // explanation of the question, if any
	IsCorrect     bool   // whether the answer was right
	TimedOut      bool   // whether the answer was forced by the timer
	ScoreDelta    int    // points awarded for this answer
	ScoreAfter    int    // total score after this answer
	ComboAfter    int    // combo after this answer
	LivesAfter    int    // lives after this answer
	Final         bool   // whether this answer ended the session
}

// SessionResult is handed to the caller exactly once when a session completes.
type SessionResult struct {
	SessionID      string           // unique session ID
	Score          int              // final score
	TotalQuestions int              // number of questions in the bank
	Category       string           // category label
	CorrectAnswers int              // number of correct answers
	MaxCombo       int              // longest streak
	LivesLeft      int              // lives remaining at the end
	Reason         CompletionReason // why the session ended
}

// Accuracy returns the share of correct answers in percent.
func (r SessionResult) Accuracy() int {
	if r.TotalQuestions == 0 {
		return 0
	}
	return r.CorrectAnswers * 100 / r.TotalQuestions
}
