package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultProgressSpec runs the refresh every night at 02:00.
const DefaultProgressSpec = "0 0 2 * * *"

const jobTimeout = 5 * time.Minute

// Refresher recomputes stored project progress.
type Refresher interface {
	RefreshProgress(ctx context.Context) (int, error)
}

type Scheduler struct {
	spec string
	job  Refresher
	log  *logrus.Entry
	cron *cron.Cron
}

func NewScheduler(spec string, job Refresher, log *logrus.Entry) *Scheduler {
	if spec == "" {
		spec = DefaultProgressSpec
	}
	return &Scheduler{spec: spec, job: job, log: log}
}

// Start registers the nightly progress refresh and starts the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(s.spec, s.RunOnce); err != nil {
		return fmt.Errorf("schedule progress refresh %q: %w", s.spec, err)
	}

	s.cron = c
	c.Start()
	s.log.WithField("spec", s.spec).Info("cron scheduler started")
	return nil
}

// Stop halts the loop and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("cron stop timed out")
	}
}

// RunOnce refreshes progress for every project.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.job.RefreshProgress(ctx)
	if err != nil {
		s.log.WithError(err).WithField("updated", n).Error("progress refresh failed")
		return
	}
	s.log.WithFields(logrus.Fields{
		"updated":  n,
		"duration": time.Since(start).String(),
	}).Info("progress refresh completed")
}
