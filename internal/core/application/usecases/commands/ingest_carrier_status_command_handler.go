package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/locker"
)

// IngestCarrierStatusCommandHandler consumes carrier webhook deliveries.
// It normalizes the raw carrier code, applies the result to the shipment and
// mirrors the progress onto the owning order where the lifecycle graph allows.
//
// Webhook delivery is at-least-once, so the handler is idempotent: a
// re-delivery reporting the shipment's already-current status with the same
// raw code commits nothing and succeeds.
//
// Ordering with manual transitions is enforced by the entity lock, which is
// keyed by order id. The lock cannot be taken before the shipment is read
// (the order id is not in the webhook payload), so the handler works in two
// phases: an untracked read to learn the order id, then the locked
// transactional pass that re-reads both aggregates.
type IngestCarrierStatusCommandHandler struct {
	uowFactory UoWFactory
	normalizer services.StatusNormalizer
	locker     *locker.EntityLocker
}

// NewIngestCarrierStatusCommandHandler creates the webhook ingestion handler.
func NewIngestCarrierStatusCommandHandler(
	uowFactory UoWFactory,
	normalizer services.StatusNormalizer,
	entityLocker *locker.EntityLocker,
) IngestCarrierStatusCommandHandler {
	return IngestCarrierStatusCommandHandler{
		uowFactory: uowFactory,
		normalizer: normalizer,
		locker:     entityLocker,
	}
}

// Handle processes one webhook delivery and returns the shipment as it stands
// after ingestion. The returned shipment's Changed method reports whether
// this delivery mutated anything.
func (h IngestCarrierStatusCommandHandler) Handle(
	ctx context.Context,
	cmd IngestCarrierStatusCommand,
) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	normalized, err := h.normalizer.Normalize(cmd.Carrier(), cmd.RawCode())
	if err != nil {
		return nil, err
	}

	// Phase one: untracked read to resolve the lock key.
	peeked, err := h.uowFactory.Create().ShipmentRepository().Get(ctx, cmd.TenantID(), cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	release, err := h.locker.Acquire(ctx, peeked.OrderID().String())
	if err != nil {
		return nil, err
	}
	defer release()

	// Phase two: both aggregates are re-read under the lock; the phase-one
	// snapshot may be stale by now.
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	current, err := uow.ShipmentRepository().Get(ctx, cmd.TenantID(), cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if err = current.ApplyCarrierStatus(normalized, cmd.RawCode()); err != nil {
		return nil, err
	}

	if !current.Changed() {
		return current, nil
	}

	if err = uow.ShipmentRepository().Update(ctx, current); err != nil {
		return nil, err
	}

	if err = h.mirrorToOrder(ctx, uow, current, cmd); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}

// mirrorToOrder advances the owning order to the lifecycle status implied by
// the shipment's new status. Out-of-order and duplicate carrier reports often
// imply moves the order graph forbids; those are skipped silently, the
// shipment record alone carries the carrier's view.
func (h IngestCarrierStatusCommandHandler) mirrorToOrder(
	ctx context.Context,
	uow UoW,
	current *shipment.Shipment,
	cmd IngestCarrierStatusCommand,
) error {
	target, ok := orderStatusFor(current.Status())
	if !ok {
		return nil
	}

	loaded, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), current.OrderID())
	if err != nil {
		return err
	}

	if !loaded.Status().CanTransition(target) {
		return nil
	}

	actor := fmt.Sprintf("carrier:%s", cmd.Carrier())

	effect, err := loaded.TransitionTo(target, actor)
	if err != nil {
		return err
	}

	if err = applyReservationEffect(ctx, uow, loaded, effect); err != nil {
		return err
	}

	return uow.OrderRepository().Update(ctx, loaded)
}

// orderStatusFor maps a shipment status to the order lifecycle status it
// implies. StatusLabelCreated has no mapping here: label creation is driven
// by the order side, not by carrier reports.
func orderStatusFor(s shipment.Status) (order.Status, bool) {
	switch s {
	case shipment.StatusInTransit:
		return order.InTransit, true
	case shipment.StatusOutForDelivery:
		return order.OutForDelivery, true
	case shipment.StatusDelivered:
		return order.Delivered, true
	case shipment.StatusException:
		return order.Failed, true
	case shipment.StatusReturned:
		return order.Returned, true
	case shipment.StatusCancelled:
		return order.Cancelled, true
	default:
		return order.Unknown, false
	}
}
