package engine

import (
	"time"

	"go.uber.org/zap"
)

const DefaultTickInterval = time.Second

// Options configures a session.
type Options struct {
	StartingLives int           // lives at session start, at least 1
	Scoring       Scoring       // reward constants
	TimerSeconds  int           // per-question countdown, 0 or less disables it
	TickInterval  time.Duration // period of the background ticker, 0 means the caller calls Tick
}

// DefaultOptions returns options without a timer.
func DefaultOptions() Options {
	return Options{
		StartingLives: DefaultStartingLives,
		Scoring:       DefaultScoring(),
		TickInterval:  DefaultTickInterval,
	}
}

// normalize replaces unusable values with defaults.
func (o Options) normalize(logger *zap.Logger) Options {
	if o.StartingLives < 1 {
		logger.Warn("invalid starting lives, using default",
			zap.Int("starting_lives", o.StartingLives),
			zap.Int("default", DefaultStartingLives),
		)
		o.StartingLives = DefaultStartingLives
	}
	if err := o.Scoring.Validate(); err != nil {
		logger.Warn("invalid scoring, using defaults", zap.Error(err))
		o.Scoring = DefaultScoring()
	}
	if o.TimerSeconds < 0 {
		o.TimerSeconds = 0
	}
	if o.TickInterval < 0 {
		o.TickInterval = 0
	}
	return o
}
