package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrCarrierIsRequiredForReadyToShip = errors.New(
		"a carrier must be chosen when transitioning to READY_TO_SHIP",
	)
)

// TransitionOrderCommand represents a request to move an order to a new
// lifecycle status on behalf of a tenant. For transitions into ReadyToShip a
// carrier must be chosen, since entering that status creates the shipment.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(tenantID, orderID, order.Reserved, "ops@acme", shipment.CarrierUnknown)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	orderID  kernel.UUID
	target   order.Status
	actor    string
	carrier  shipment.Carrier

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// The carrier is only validated (and only required) when the target status
// is ReadyToShip; pass shipment.CarrierUnknown otherwise.
func NewTransitionOrderCommand(
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	target order.Status,
	actor string,
	carrier shipment.Carrier,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
		cmd.setCarrier(target, carrier),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// TenantID returns the tenant the caller acts for.
func (c TransitionOrderCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Actor returns who requested the transition.
func (c TransitionOrderCommand) Actor() string {
	return c.actor
}

// Carrier returns the carrier for shipment creation; meaningful only when
// the target status is ReadyToShip.
func (c TransitionOrderCommand) Carrier() shipment.Carrier {
	return c.carrier
}

func (c *TransitionOrderCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *TransitionOrderCommand) setCarrier(target order.Status, carrier shipment.Carrier) error {
	if target != order.ReadyToShip {
		c.carrier = carrier
		return nil
	}

	if err := carrier.Validate(); err != nil {
		return ErrCarrierIsRequiredForReadyToShip
	}

	c.carrier = carrier
	return nil
}
