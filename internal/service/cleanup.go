package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type CleanupRepo interface {
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

// Cleaner sweeps expired refresh and reset tokens on a fixed schedule.
// It is hygiene, not enforcement: expired tokens are already rejected
// at verify time, the sweep only keeps the tables from growing forever.
type Cleaner struct {
	repo     CleanupRepo
	interval time.Duration
	log      *logrus.Logger
}

func NewCleaner(repo CleanupRepo, interval time.Duration, log *logrus.Logger) *Cleaner {
	return &Cleaner{repo: repo, interval: interval, log: log}
}

// Start schedules the sweep and returns the running cron so the caller
// can stop it on shutdown.
func (c *Cleaner) Start() (*cron.Cron, error) {
	cr := cron.New()
	if _, err := cr.AddFunc(fmt.Sprintf("@every %s", c.interval), c.Run); err != nil {
		return nil, err
	}
	cr.Start()
	return cr, nil
}

// Run performs one sweep. Failures are logged and swallowed; the sweep
// must never take request serving down with it.
func (c *Cleaner) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := c.repo.DeleteExpiredTokens(ctx)
	if err != nil {
		c.log.WithError(err).Error("token cleanup failed")
		return
	}
	if deleted > 0 {
		c.log.WithField("deleted", deleted).Info("expired tokens removed")
	}
}
