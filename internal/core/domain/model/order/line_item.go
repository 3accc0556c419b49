package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// LineItem is an ordered position within an order. It tracks, per SKU, the
// ordered quantity plus reserved and shipped counters. The counters make
// reservation effects idempotent: a line that is already fully reserved (or
// fully released) contributes a zero delta when the effect is re-applied.
type LineItem struct {
	sku         string
	quantity    int
	reservedQty int
	shippedQty  int
}

// NewLineItem creates a line for the given SKU and positive quantity.
func NewLineItem(sku string, quantity int) (LineItem, error) {
	if sku == "" {
		return LineItem{}, errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return LineItem{sku: sku, quantity: quantity}, nil
}

// RestoreLineItem rehydrates a line including its counters from persistence.
func RestoreLineItem(sku string, quantity, reservedQty, shippedQty int) LineItem {
	return LineItem{
		sku:         sku,
		quantity:    quantity,
		reservedQty: reservedQty,
		shippedQty:  shippedQty,
	}
}

// SKU returns the line's stock keeping unit.
func (l LineItem) SKU() string {
	return l.sku
}

// Quantity returns the ordered quantity.
func (l LineItem) Quantity() int {
	return l.quantity
}

// ReservedQty returns how many units are currently held in the ledger.
func (l LineItem) ReservedQty() int {
	return l.reservedQty
}

// ShippedQty returns how many units have left the warehouse.
func (l LineItem) ShippedQty() int {
	return l.shippedQty
}

// reserveDelta returns how many units still need reserving for this line.
func (l LineItem) reserveDelta() int {
	return l.quantity - l.reservedQty
}

// releaseDelta returns how many units are held and must be given back.
func (l LineItem) releaseDelta() int {
	return l.reservedQty
}
