package service

import (
	"context"
	"fmt"

	"airline-sentiment-dashboard/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler triggers Reload on a cron schedule.
type RefreshScheduler interface {
	Start(ctx context.Context)
}

type refreshScheduler struct {
	orchestrator Orchestrator
	logger       *logger.Logger
	cron         *cron.Cron
	expression   string
}

// NewRefreshScheduler validates expression (standard 5-field cron or a descriptor such as "@every 5m").
func NewRefreshScheduler(orchestrator Orchestrator, expression string, log *logger.Logger) (RefreshScheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser))

	s := &refreshScheduler{
		orchestrator: orchestrator,
		logger:       log,
		cron:         c,
		expression:   expression,
	}
	if _, err := c.AddFunc(expression, s.reload); err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", expression, err)
	}
	return s, nil
}

// Start runs the schedule until ctx is done.
func (s *refreshScheduler) Start(ctx context.Context) {
	s.logger.Info("Refresh scheduler started", logger.StringField("schedule", s.expression))
	s.cron.Start()

	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info("Refresh scheduler stopping")
}

func (s *refreshScheduler) reload() {
	s.logger.Debug("Scheduled reload triggered")
	s.orchestrator.Reload()
}
