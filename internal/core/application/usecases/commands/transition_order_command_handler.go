package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/locker"
)

// TransitionOrderCommandHandler is the tenant-scoped transition executor.
// It orchestrates a transition end-to-end: acquires the entity lock, loads
// the order scoped to the caller's tenant, asks the state machine whether
// the move is legal, applies the implied side effects, and persists the new
// state plus one timeline event as a single unit of work.
//
// Cross-tenant isolation is enforced here, at the load step, so no
// transition path can bypass tenant scoping: an order owned by another
// tenant surfaces as errs.ErrObjectNotFound, exactly like a missing one.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, entityLocker)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, locker.ErrLockTimeout):
//	    // retry with backoff
//	case errors.Is(err, order.ErrIllegalTransition):
//	    // inspect *order.IllegalTransitionError for the legal next states
//	}
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	locker     *locker.EntityLocker
}

// NewTransitionOrderCommandHandler creates the executor.
// Requires a UoWFactory for cross-aggregate transactions and the shared
// entity locker that serializes transitions per order.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	entityLocker *locker.EntityLocker,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     entityLocker,
	}
}

// Handle executes one transition attempt. On any failure the unit of work is
// rolled back and the order is left exactly as it was before the attempt.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	release, err := h.locker.Acquire(ctx, cmd.OrderID().String())
	if err != nil {
		return nil, err
	}
	defer release()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loaded, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	effect, err := loaded.TransitionTo(cmd.Target(), cmd.Actor())
	if err != nil {
		return nil, err
	}

	if err = applyReservationEffect(ctx, uow, loaded, effect); err != nil {
		return nil, err
	}

	if cmd.Target() == order.ReadyToShip {
		if err = createShipment(ctx, uow, loaded, cmd.Carrier()); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, loaded); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return loaded, nil
}

// applyReservationEffect translates the state machine's directive into atomic
// ledger deltas. The per-line counters make re-application a zero-delta
// no-op, so re-entering a reserving or releasing status never double-applies.
func applyReservationEffect(
	ctx context.Context,
	uow UoW,
	loaded *order.Order,
	effect order.ReservationEffect,
) error {
	switch effect {
	case order.Reserve:
		inventoryRepo := uow.InventoryRepository()
		for sku, delta := range loaded.ReserveDeltas() {
			if err := inventoryRepo.AdjustReserved(ctx, loaded.TenantID(), sku, delta); err != nil {
				return err
			}
		}
		loaded.MarkReserved()

	case order.Release:
		inventoryRepo := uow.InventoryRepository()
		for sku, delta := range loaded.ReleaseDeltas() {
			if err := inventoryRepo.AdjustReserved(ctx, loaded.TenantID(), sku, -delta); err != nil {
				return err
			}
		}
		loaded.MarkReleased()

	case order.NoEffect:
	}

	return nil
}

// createShipment materializes the order's shipment on entry to ReadyToShip.
func createShipment(ctx context.Context, uow UoW, loaded *order.Order, carrier shipment.Carrier) error {
	newShipment, err := shipment.NewShipment(
		kernel.NewUUID(),
		loaded.ID(),
		loaded.TenantID(),
		loaded.TenantID(),
		carrier,
	)
	if err != nil {
		return err
	}

	return uow.ShipmentRepository().Add(ctx, newShipment)
}
