package engine

import (
	"errors"
	"fmt"
)

const (
	DefaultBaseReward = 10
	DefaultComboBonus = 5
)

var ErrInvalidScoring = errors.New("invalid scoring config")

// Scoring turns a verdict and the combo reached before the answer into points.
//
// A correct answer is worth BaseReward + ComboBonus*comboBefore, so with the
// defaults the first answer of a streak scores 10, the second 15, the third 20.
// ComboBonus equal to BaseReward gives BaseReward*(comboBefore+1).
type Scoring struct {
	BaseReward int // points for a correct answer at combo 0
	ComboBonus int // extra points per combo step
}

// DefaultScoring returns the production scoring constants.
func DefaultScoring() Scoring {
	return Scoring{
		BaseReward: DefaultBaseReward,
		ComboBonus: DefaultComboBonus,
	}
}

// Validate checks that the scoring never yields a negative or zero reward.
func (s Scoring) Validate() error {
	if s.BaseReward <= 0 {
		return fmt.Errorf("%w: base reward must be positive, got %d", ErrInvalidScoring, s.BaseReward)
	}
	if s.ComboBonus < 0 {
		return fmt.Errorf("%w: combo bonus must not be negative, got %d", ErrInvalidScoring, s.ComboBonus)
	}
	return nil
}

// ScoreFor returns the points for one answer.
// comboBefore must be the combo accumulated from previous answers only.
func (s Scoring) ScoreFor(isCorrect bool, comboBefore int) int {
	if !isCorrect {
		return 0
	}
	if comboBefore < 0 {
		comboBefore = 0
	}
	return s.BaseReward + s.ComboBonus*comboBefore
}
