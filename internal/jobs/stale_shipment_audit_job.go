package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultStaleThreshold is how long a non-terminal shipment may go without a
// carrier update before the audit job flags it.
const DefaultStaleThreshold = 24 * time.Hour

// StaleShipmentAuditJob periodically scans for shipments that stopped
// receiving carrier updates. It is read-only: flagged shipments are reported
// through the log for operators to chase with the carrier, never mutated.
type StaleShipmentAuditJob struct {
	shipments ports.ShipmentRepository
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleShipmentAuditJob creates the audit job. A non-positive threshold
// falls back to DefaultStaleThreshold.
func NewStaleShipmentAuditJob(
	shipments ports.ShipmentRepository,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleShipmentAuditJob {
	if threshold <= 0 {
		threshold = DefaultStaleThreshold
	}

	return &StaleShipmentAuditJob{
		shipments: shipments,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_shipment_audit_job"),
	}
}

// Start begins the audit job to run every ten minutes.
func (j *StaleShipmentAuditJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * *", func() {
		ctx := context.Background()
		j.runOnce(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale shipment audit job started",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the audit job.
func (j *StaleShipmentAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale shipment audit job stopped")
}

func (j *StaleShipmentAuditJob) runOnce(ctx context.Context) {
	stale, err := j.shipments.GetStale(ctx, time.Now().UTC().Add(-j.threshold))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale shipment audit failed", "error", err)
		return
	}

	for _, s := range stale {
		j.logger.WarnContext(ctx, "Shipment has not received a carrier update",
			"shipmentId", s.ID().String(),
			"orderId", s.OrderID().String(),
			"carrier", s.Carrier().String(),
			"status", s.Status().String(),
			"lastUpdatedAt", s.UpdatedAt().Format(time.RFC3339),
		)
	}
}
