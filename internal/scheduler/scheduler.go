package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/config"
	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

const probeTimeout = 10 * time.Second

// Target is the backend call used to tell whether the EPD API answers.
type Target interface {
	Me(ctx context.Context) (*models.User, error)
}

// Status is the outcome of the latest backend probe.
type Status struct {
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checkedAt"`
	LatencyMS int64     `json:"latencyMs"`
	Error     string    `json:"error,omitempty"`
}

// Scheduler periodically probes the EPD backend.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	target   Target
	status   atomic.Pointer[Status]
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ProbeConfig, target Target, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	schedule := cfg.CronSchedule
	if schedule == "" {
		schedule = "@every 1m"
	}

	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		target:   target,
		logger:   logger,
	}
}

// Start probes once and then on every tick of the configured schedule.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.probe); err != nil {
		s.logger.Error("failed to schedule backend probe", zap.Error(err))
		return err
	}

	go s.probe()
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running probe to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Status returns the latest probe result, or nil before the first probe.
func (s *Scheduler) Status() *Status {
	return s.status.Load()
}

// RunOnce probes the backend and records the result.
func (s *Scheduler) RunOnce(ctx context.Context) Status {
	start := time.Now()
	_, err := s.target.Me(ctx)

	status := Status{Reachable: true, CheckedAt: start, LatencyMS: time.Since(start).Milliseconds()}
	var httpErr *epdapi.HTTPError
	switch {
	case err == nil:
	case errors.As(err, &httpErr):
		// any HTTP answer, 401 included, proves the backend is up
	default:
		status.Reachable = false
		status.Error = epdapi.Message(err)
	}

	previous := s.status.Swap(&status)
	if previous == nil || previous.Reachable != status.Reachable {
		if status.Reachable {
			s.logger.Info("epd backend reachable", zap.Int64("latency_ms", status.LatencyMS))
		} else {
			s.logger.Warn("epd backend unreachable", zap.Error(err))
		}
	}
	return status
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	s.RunOnce(ctx)
}
