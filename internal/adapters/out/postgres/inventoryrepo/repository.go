package inventoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
// The ledger has no aggregate to track: adjustments are single guarded
// statements, which is what keeps concurrent reservations against the same
// SKU pool correct without row locks held across round trips.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// AdjustReserved applies a signed delta to a SKU's reserved counter.
// The WHERE clause keeps 0 <= reserved <= on_hand; a violating delta matches
// no row and the statement is a no-op reported as ErrInsufficientStock.
// A missing ledger row is reported the same way: a SKU with no row has
// nothing to reserve.
func (r *GormInventoryRepository) AdjustReserved(
	ctx context.Context,
	tenantID kernel.TenantID,
	sku string,
	delta int,
) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	if delta == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE stock_items
		SET reserved = reserved + ?, updated_at = NOW()
		WHERE tenant_id = ? AND sku = ?
		  AND reserved + ? >= 0
		  AND reserved + ? <= on_hand
	`, delta, tenantID.UUID().Bytes(), sku, delta, delta)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return inventory.ErrInsufficientStock
	}

	return nil
}

// Get retrieves a SKU's ledger row for inspection.
func (r *GormInventoryRepository) Get(
	ctx context.Context,
	tenantID kernel.TenantID,
	sku string,
) (inventory.StockItem, error) {
	if err := tenantID.Validate(); err != nil {
		return inventory.StockItem{}, err
	}
	if sku == "" {
		return inventory.StockItem{}, errs.NewValueIsRequiredError("sku")
	}

	var dto StockItemDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND sku = ?", tenantID.UUID().Bytes(), sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inventory.StockItem{}, errs.NewObjectNotFoundError("stock item", sku)
		}
		return inventory.StockItem{}, err
	}

	return toDomain(dto)
}
