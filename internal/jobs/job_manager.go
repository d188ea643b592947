package jobs

import (
	"fmt"
	"log/slog"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	scheduledTransitionJob *ScheduledTransitionJob
	notificationRequeueJob *NotificationRequeueJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	scheduledRunHandler commands.RunScheduledTransitionsCommandHandler,
	requeuer NotificationRequeuer,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		scheduledTransitionJob: NewScheduledTransitionJob(scheduledRunHandler, logger),
		notificationRequeueJob: NewNotificationRequeueJob(requeuer, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.scheduledTransitionJob.Start(); err != nil {
		return fmt.Errorf("failed to start scheduled transition job: %w", err)
	}

	if err := jm.notificationRequeueJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.scheduledTransitionJob.Stop()
		return fmt.Errorf("failed to start notification requeue job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.scheduledTransitionJob.Stop()
	jm.notificationRequeueJob.Stop()
}
