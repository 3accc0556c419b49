package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for the per-SKU
// reservation ledger.
type InventoryRepository interface {
	// AdjustReserved applies a signed delta to a SKU's reserved counter as a
	// single atomic statement guarded by 0 <= reserved <= on_hand, so
	// concurrent orders reserving against the same pool never lose updates.
	// A reserve that would exceed the pool returns
	// inventory.ErrInsufficientStock; the row is left untouched.
	AdjustReserved(ctx context.Context, tenantID kernel.TenantID, sku string, delta int) error

	// Get retrieves a SKU's ledger row for inspection.
	Get(ctx context.Context, tenantID kernel.TenantID, sku string) (inventory.StockItem, error)
}
