// Package inventory provides the reservation ledger model. Each SKU has one
// stock row tracking the on-hand quantity and the counter of units currently
// reserved against open orders.
package inventory

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrInsufficientStock is returned when a reserve delta would push a SKU's
// reserved counter past its on-hand quantity.
var ErrInsufficientStock = errors.New("insufficient stock for reservation")

// StockItem is one row of the per-tenant reservation ledger.
// Invariant: 0 <= Reserved <= OnHand. The invariant is enforced by the
// repository's atomic delta update, never by read-modify-write in memory.
type StockItem struct {
	TenantID  kernel.TenantID
	SKU       string
	OnHand    int
	Reserved  int
	UpdatedAt time.Time
}

// Available returns how many units are free to reserve.
func (s StockItem) Available() int {
	return s.OnHand - s.Reserved
}
