// Package jobs provides scheduled background reports for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds-aware parser, so both
// six-field expressions and descriptors such as "@every 1m" are accepted.
//
// # Available Jobs
//
//  1. UnsettledOrdersReportJob logs orders that have been waiting for payment
//     verification longer than a threshold, for manual reconciliation with the gateway.
//  2. ConnectionsReportJob logs how many observers are connected.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(schedule, unsettledHandler, 15*time.Minute, registry, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A failing run is logged and retried on the next tick. Failed job starts stop any
// already running jobs.
package jobs
