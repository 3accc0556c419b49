package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Lookups are tenant-scoped exactly like order lookups.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment by (tenant, id) in a single filtered lookup.
	// Returns errs.ErrObjectNotFound for absent and cross-tenant shipments alike.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*shipment.Shipment, error)

	// GetStale retrieves non-terminal shipments across all tenants whose last
	// update is older than the threshold. Used by the audit job.
	GetStale(ctx context.Context, olderThan time.Time) ([]*shipment.Shipment, error)
}
