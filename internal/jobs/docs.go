// Package jobs provides scheduled background tasks for the rental order
// fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order lifecycle depends on.
//
// # Available Jobs
//
// 1. ScheduledTransitionJob - Runs hourly to advance orders whose event dates
// have been reached (Delivered to InUse, InUse to AwaitingReturn)
// 2. NotificationRequeueJob - Runs every five minutes to recover notification
// ledger rows stranded by a crash
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(scheduledRunHandler, dispatcher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log sweep failures and wait for the next tick; a failing sweep is
// retried by cadence, not inline. Failed job starts stop any already running
// jobs.
package jobs
