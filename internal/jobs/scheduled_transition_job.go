package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/commands"
)

// ScheduledTransitionJob runs the date-triggered lifecycle sweep every hour:
// Delivered orders whose event has started move to InUse, InUse orders whose
// event has ended move to AwaitingReturn. The sweep is idempotent, so the
// hourly cadence trades latency for load without risking double moves.
type ScheduledTransitionJob struct {
	handler commands.RunScheduledTransitionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewScheduledTransitionJob creates the hourly lifecycle sweep job.
func NewScheduledTransitionJob(
	handler commands.RunScheduledTransitionsCommandHandler,
	logger *slog.Logger,
) *ScheduledTransitionJob {
	return &ScheduledTransitionJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "scheduled_transition_job"),
	}
}

// Start begins the sweep on the top of every hour.
func (j *ScheduledTransitionJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		transitioned, err := j.handler.Handle(ctx, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Scheduled transition sweep failed", "error", err)
			return
		}

		if transitioned > 0 {
			j.logger.InfoContext(ctx, "Scheduled transition sweep completed",
				"transitioned", transitioned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Scheduled transition job started (running hourly)")
	return nil
}

// Stop stops the scheduled transition job.
func (j *ScheduledTransitionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Scheduled transition job stopped")
}
