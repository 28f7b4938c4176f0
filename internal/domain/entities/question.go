package entities

import (
	"errors"
	"fmt"
	"strings"
)

const minOptionsPerQuestion = 2

var (
	ErrBlankPrompt       = errors.New("question prompt is blank")
	ErrNotEnoughOptions  = errors.New("question needs at least two options")
	ErrBlankOption       = errors.New("question option is blank")
	ErrCorrectOutOfRange = errors.New("question correct index is out of range")
	ErrUnknownDifficulty = errors.New("unknown question difficulty")
)

// Difficulty is an optional hint attached to a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is empty or one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Question is a single multiple-choice question.
// It is read-only once handed to a session.
type Question struct {
	ID           string     `json:"id" yaml:"id"`                                       // stable question identifier
	Prompt       string     `json:"prompt" yaml:"prompt"`                               // question text shown to the learner
	Options      []string   `json:"options" yaml:"options"`                             // answer options in display order
	CorrectIndex int        `json:"correct_index" yaml:"correct_index"`                 // index of the right option
	Explanation  string     `json:"explanation,omitempty" yaml:"explanation,omitempty"` // optional explanation shown after answering
	Difficulty   Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`   // optional difficulty hint
	Category     string     `json:"-" yaml:"-"`                                         // category the question was loaded from
}

// Validate checks that the question can be played.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return ErrBlankPrompt
	}
	if len(q.Options) < minOptionsPerQuestion {
		return fmt.Errorf("%w: got %d", ErrNotEnoughOptions, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d", ErrBlankOption, i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrCorrectOutOfRange, q.CorrectIndex, len(q.Options))
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, q.Difficulty)
	}
	return nil
}

// IsCorrect reports whether the option at index is the right answer.
func (q Question) IsCorrect(index int) bool {
	return index == q.CorrectIndex
}

// HasOption reports whether index addresses one of the options.
func (q Question) HasOption(index int) bool {
	return index >= 0 && index < len(q.Options)
}

// Clone returns a deep copy so callers cannot mutate a session's bank.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}
