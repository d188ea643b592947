package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// NotificationRequeuer recovers notification ledger rows stranded in a
// non-terminal status, typically after a crash cut the retry loop short.
type NotificationRequeuer interface {
	RequeueStalled(ctx context.Context) (int, error)
}

// NotificationRequeueJob periodically re-runs delivery for stranded
// notifications so a restart never silently loses queued messages.
type NotificationRequeueJob struct {
	requeuer NotificationRequeuer
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewNotificationRequeueJob creates the requeue job.
func NewNotificationRequeueJob(requeuer NotificationRequeuer, logger *slog.Logger) *NotificationRequeueJob {
	return &NotificationRequeueJob{
		requeuer: requeuer,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "notification_requeue_job"),
	}
}

// Start begins the requeue sweep every five minutes.
func (j *NotificationRequeueJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()

		recovered, err := j.requeuer.RequeueStalled(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification requeue sweep failed", "error", err)
			return
		}

		if recovered > 0 {
			j.logger.InfoContext(ctx, "Notification requeue sweep completed",
				"recovered", recovered)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification requeue job started (running every five minutes)")
	return nil
}

// Stop stops the notification requeue job.
func (j *NotificationRequeueJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification requeue job stopped")
}
