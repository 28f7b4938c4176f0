package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/storage"
)

// Janitor abandons sessions nobody has touched for a while.
type Janitor struct {
	sessions *storage.SessionStorage
	idleTTL  time.Duration
	schedule string
	now      func() time.Time
	logger   *zap.Logger
}

// NewJanitor creates a janitor that runs on a cron schedule.
func NewJanitor(sessions *storage.SessionStorage, schedule string, idleTTL time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		sessions: sessions,
		idleTTL:  idleTTL,
		schedule: schedule,
		now:      time.Now,
		logger:   logger,
	}
}

// Start runs the cleanup job until ctx is done.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		if n := j.Sweep(); n > 0 {
			j.logger.Info("abandoned idle quiz sessions", zap.Int("count", n))
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	j.logger.Info("session janitor started", zap.String("schedule", j.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
	return nil
}

// Sweep abandons idle sessions and returns how many it abandoned.
func (j *Janitor) Sweep() int {
	if j.idleTTL <= 0 {
		return 0
	}
	cutoff := j.now().Add(-j.idleTTL)

	n := 0
	for _, sess := range j.sessions.IdleSince(cutoff) {
		if sess.Engine.Abandon() {
			n++
		}
	}
	return n
}
