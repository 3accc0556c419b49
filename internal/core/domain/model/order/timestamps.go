package order

import "time"

// Timestamps holds the named audit slots an order stamps as it moves through
// its lifecycle. Each slot records the first time its status group was
// reached; re-entering a status (for example a retry after Failed) never
// overwrites an already-stamped slot.
type Timestamps struct {
	ImportedAt    *time.Time
	ReservedAt    *time.Time
	ReadyToShipAt *time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	ReturnedAt    *time.Time
}

// slot returns a pointer to the named slot, or nil for unknown names.
func (t *Timestamps) slot(field string) **time.Time {
	switch field {
	case "importedAt":
		return &t.ImportedAt
	case "reservedAt":
		return &t.ReservedAt
	case "readyToShipAt":
		return &t.ReadyToShipAt
	case "shippedAt":
		return &t.ShippedAt
	case "deliveredAt":
		return &t.DeliveredAt
	case "cancelledAt":
		return &t.CancelledAt
	case "returnedAt":
		return &t.ReturnedAt
	default:
		return nil
	}
}

// stamp sets the named slot to at if it has not been stamped before.
// Returns true when the slot was written.
func (t *Timestamps) stamp(field string, at time.Time) bool {
	slot := t.slot(field)
	if slot == nil || *slot != nil {
		return false
	}
	*slot = &at
	return true
}

// Get returns the named slot's value, or nil when unset or unknown.
func (t *Timestamps) Get(field string) *time.Time {
	slot := t.slot(field)
	if slot == nil {
		return nil
	}
	return *slot
}
