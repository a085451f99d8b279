// Package jobs provides scheduled background tasks for the laundry marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the two time-based policies of the order lifecycle.
//
// # Available Jobs
//
// 1. AutoConfirmJob - every 15 minutes confirms delivered orders the client has
// not confirmed within two hours of delivery
// 2. SettlementJob - every hour releases commissions older than 24 hours for payout
// and announces them to the payout initiator
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(autoConfirmHandler, settleHandler, jobs.Config{}, nil, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// On shutdown, wait for an in-flight sweep to finish
//	_ = jobManager.StopAll(shutdownCtx)
//
// # Error Handling
//
// - A run never overlaps its predecessor and a panicking run is recovered
// - Store outages are logged as warnings and retried on the next tick
// - Failed job starts stop any already running jobs
package jobs
