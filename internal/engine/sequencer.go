package engine

import "github.com/aliskhannn/quizmentor/internal/domain/entities"

// QuestionSequencer walks an immutable question bank in order.
type QuestionSequencer struct {
	bank  []entities.Question
	index int
	done  bool
}

// NewQuestionSequencer creates a sequencer positioned on the first question.
func NewQuestionSequencer(bank []entities.Question) *QuestionSequencer {
	return &QuestionSequencer{bank: bank}
}

// Current returns the active question, or false if the bank is empty.
func (s *QuestionSequencer) Current() (entities.Question, bool) {
	if len(s.bank) == 0 || s.index >= len(s.bank) {
		return entities.Question{}, false
	}
	return s.bank[s.index], true
}

// Index returns the position of the active question.
func (s *QuestionSequencer) Index() int { return s.index }

// Len returns the number of questions in the bank.
func (s *QuestionSequencer) Len() int { return len(s.bank) }

// IsLast reports whether the active question is the last one.
func (s *QuestionSequencer) IsLast() bool {
	return s.index+1 >= len(s.bank)
}

// Advance moves to the next question. It returns false at the end of the
// bank or after Finish, leaving the position unchanged.
func (s *QuestionSequencer) Advance() bool {
	if s.done || s.IsLast() {
		return false
	}
	s.index++
	return true
}

// Finish freezes the sequencer; later Advance calls are no-ops.
func (s *QuestionSequencer) Finish() {
	s.done = true
}
