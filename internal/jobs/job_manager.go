package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleShipmentAuditJob *StaleShipmentAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	shipments ports.ShipmentRepository,
	staleThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleShipmentAuditJob: NewStaleShipmentAuditJob(shipments, staleThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleShipmentAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale shipment audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleShipmentAuditJob.Stop()
}
