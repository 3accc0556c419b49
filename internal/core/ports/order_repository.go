package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every lookup is scoped by tenant in the same query, so an order belonging
// to another tenant is indistinguishable from a nonexistent one.
type OrderRepository interface {
	// Add persists a new order aggregate together with its lines and the
	// creation timeline event. The order must be valid and not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate with a
	// compare-and-swap on the version read at load time. A stale version
	// (the order changed between read and write) returns
	// errs.ErrVersionIsInvalid and writes nothing. New timeline events are
	// appended, never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by (tenant, id) in a single filtered lookup.
	// Returns errs.ErrObjectNotFound for absent and cross-tenant orders alike.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error)

	// GetAllOpen retrieves the tenant's orders not yet in a terminal status.
	GetAllOpen(ctx context.Context, tenantID kernel.TenantID) ([]*order.Order, error)
}
