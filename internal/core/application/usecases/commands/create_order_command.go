package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one line item is required")
	ErrActorIsRequired  = errors.New("actor is required")
)

// CreateOrderCommand represents a request to import a new order for a tenant.
// This is the ingestion collaborator's entry point: the order enters the
// lifecycle in status NEW.
//
// Example:
//
//	line, _ := order.NewLineItem("SKU-123", 2)
//	cmd, err := NewCreateOrderCommand(tenantID, kernel.NewUUID(), []order.LineItem{line}, "ingestion")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	orderID  kernel.UUID
	lines    []order.LineItem
	actor    string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to import a new order.
// Validates the tenant, the order ID, the line items and the actor.
func NewCreateOrderCommand(
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	lines []order.LineItem,
	actor string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c CreateOrderCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns the order's line items.
func (c CreateOrderCommand) Lines() []order.LineItem {
	return append([]order.LineItem(nil), c.lines...)
}

// Actor returns who requested the import.
func (c CreateOrderCommand) Actor() string {
	return c.actor
}

func (c *CreateOrderCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.LineItem) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	c.lines = append([]order.LineItem(nil), lines...)
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
