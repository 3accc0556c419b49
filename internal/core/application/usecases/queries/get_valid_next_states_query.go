// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly with raw SQL and return read models, bypassing the
// aggregate layer.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetValidNextStatesQueryIsNotConstructed = errors.New(
	"GetValidNextStatesQuery must be created via NewGetValidNextStatesQuery constructor",
)

// GetValidNextStatesQuery asks which lifecycle statuses an order may legally
// move to from where it stands now. Used by UIs to render only the actions
// that will not be rejected.
//
// Example:
//
//	query, err := NewGetValidNextStatesQuery(tenantID, orderID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetValidNextStatesQuery struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetValidNextStatesQuery creates a validated query.
func NewGetValidNextStatesQuery(tenantID kernel.TenantID, orderID kernel.UUID) (GetValidNextStatesQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetValidNextStatesQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return GetValidNextStatesQuery{}, err
	}

	return GetValidNextStatesQuery{
		tenantID: tenantID,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetValidNextStatesQuery) Validate() error {
	return q.guard.Validate(ErrGetValidNextStatesQueryIsNotConstructed)
}

// TenantID returns the tenant the caller acts for.
func (q GetValidNextStatesQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// OrderID returns the order being inspected.
func (q GetValidNextStatesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetValidNextStatesQueryResponse carries an order's current status and the
// statuses reachable from it. NextStates is empty, not nil, for terminal
// statuses.
type GetValidNextStatesQueryResponse struct {
	OrderID    kernel.UUID
	Status     order.Status
	NextStates []order.Status
}
