// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the request path cannot cover.
//
// # Available Jobs
//
// 1. StaleShipmentAuditJob - Runs every ten minutes and flags non-terminal
// shipments whose last carrier update is older than the configured threshold.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(shipmentRepository, staleThreshold, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The audit job is read-only: it reports stale shipments through the log and
// never mutates them, so a failing scan is logged and retried on the next tick.
package jobs
