package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for the order lifecycle. It owns the current
// status, the per-status timestamp slots, the ordered line items with their
// reservation counters, and the append-only event timeline.
//
// Order maintains these invariants:
//   - status is always a member of the Status enum
//   - every mutation goes through TransitionTo, which consults the
//     transition graph; callers cannot special-case exceptions elsewhere
//   - the timeline only grows and stays ordered by occurrence
//   - terminal statuses (Cancelled, Returned) never transition again
//
// Orders are never hard-deleted; terminal statuses stand in for deletion.
type Order struct {
	id       kernel.UUID
	tenantID kernel.TenantID

	status     Status
	timestamps Timestamps
	lines      []LineItem
	timeline   []TimelineEvent

	// version backs the compare-and-swap write in the repository.
	version int64

	isConstructed bool
}

// NewOrder creates an order in status New with the given lines.
// Stamps importedAt and appends the creation event. The actor records who
// (or what collaborator) imported the order.
func NewOrder(id kernel.UUID, tenantID kernel.TenantID, lines []LineItem, actor string) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}
	if actor == "" {
		return nil, errs.NewValueIsRequiredError("actor")
	}

	o := &Order{
		id:            id,
		tenantID:      tenantID,
		status:        New,
		lines:         append([]LineItem(nil), lines...),
		isConstructed: true,
	}
	o.timestamps.stamp("importedAt", time.Now().UTC())
	o.timeline = append(o.timeline, newTimelineEvent(EventTypeCreated, actor, map[string]string{
		"status": New.String(),
	}))

	return o, nil
}

// RestoreOrder rehydrates an order from persistence without re-running
// creation side effects. The stored status must be valid.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	status Status,
	timestamps Timestamps,
	lines []LineItem,
	timeline []TimelineEvent,
	version int64,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		tenantID:      tenantID,
		status:        status,
		timestamps:    timestamps,
		lines:         append([]LineItem(nil), lines...),
		timeline:      append([]TimelineEvent(nil), timeline...),
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.TenantID {
	return o.tenantID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Timestamps returns the audit timestamp slots.
func (o *Order) Timestamps() Timestamps {
	return o.timestamps
}

// Lines returns the order's line items in order.
func (o *Order) Lines() []LineItem {
	return append([]LineItem(nil), o.lines...)
}

// Timeline returns the append-only event timeline, oldest first.
func (o *Order) Timeline() []TimelineEvent {
	return append([]TimelineEvent(nil), o.timeline...)
}

// Version returns the optimistic-concurrency version loaded from persistence.
func (o *Order) Version() int64 {
	return o.version
}

// TransitionTo moves the order to the requested status if the transition
// graph permits it, stamps the target's timestamp slot (first reach only),
// appends one timeline event, and returns the reservation directive the
// caller must apply for the target status.
//
// An illegal move returns *IllegalTransitionError carrying the legal next
// states; the order is left untouched.
func (o *Order) TransitionTo(to Status, actor string) (ReservationEffect, error) {
	if err := o.Validate(); err != nil {
		return NoEffect, err
	}
	if err := to.Validate(); err != nil {
		return NoEffect, err
	}
	if actor == "" {
		return NoEffect, errs.NewValueIsRequiredError("actor")
	}

	if !o.status.CanTransition(to) {
		return NoEffect, NewIllegalTransitionError(o.status, to)
	}

	from := o.status
	o.status = to

	if field, ok := to.TimestampField(); ok {
		o.timestamps.stamp(field, time.Now().UTC())
	}

	o.timeline = append(o.timeline, newTimelineEvent(EventTypeStatusChanged, actor, map[string]string{
		"from": from.String(),
		"to":   to.String(),
	}))

	return to.ReservationEffect(), nil
}

// ReserveDeltas returns the per-SKU quantities still missing from the ledger.
// Lines already fully reserved contribute nothing, which is what makes
// re-applying a Reserve effect idempotent.
func (o *Order) ReserveDeltas() map[string]int {
	deltas := make(map[string]int)
	for _, line := range o.lines {
		if d := line.reserveDelta(); d > 0 {
			deltas[line.sku] += d
		}
	}
	return deltas
}

// ReleaseDeltas returns the per-SKU quantities currently held that a Release
// effect must give back. Already-released lines contribute nothing.
func (o *Order) ReleaseDeltas() map[string]int {
	deltas := make(map[string]int)
	for _, line := range o.lines {
		if d := line.releaseDelta(); d > 0 {
			deltas[line.sku] += d
		}
	}
	return deltas
}

// MarkReserved records that the reserve deltas were applied to the ledger.
func (o *Order) MarkReserved() {
	for i := range o.lines {
		o.lines[i].reservedQty = o.lines[i].quantity
	}
}

// MarkReleased records that the held quantities were given back.
func (o *Order) MarkReleased() {
	for i := range o.lines {
		o.lines[i].reservedQty = 0
	}
}
