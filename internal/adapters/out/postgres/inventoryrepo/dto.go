// Package inventoryrepo persists the per-SKU reservation ledger.
package inventoryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StockItemDTO represents one ledger row: how much of a SKU a tenant has on
// hand and how much of it is currently reserved by open orders.
type StockItemDTO struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU       string    `gorm:"primaryKey;column:sku"`
	OnHand    int
	Reserved  int
	UpdatedAt time.Time
}

// TableName specifies the database table name for stock ledger rows.
func (StockItemDTO) TableName() string {
	return "stock_items"
}

// toDomain converts a ledger row to its domain representation.
func toDomain(dto StockItemDTO) (inventory.StockItem, error) {
	tenantUUID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return inventory.StockItem{}, err
	}

	tenantID, err := kernel.NewTenantID(tenantUUID)
	if err != nil {
		return inventory.StockItem{}, err
	}

	return inventory.StockItem{
		TenantID:  tenantID,
		SKU:       dto.SKU,
		OnHand:    dto.OnHand,
		Reserved:  dto.Reserved,
		UpdatedAt: dto.UpdatedAt,
	}, nil
}
