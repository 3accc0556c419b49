package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery retrieves all of a tenant's orders that have not reached
// a terminal lifecycle status.
//
// Example:
//
//	query, err := NewGetOpenOrdersQuery(tenantID)
//	if err != nil {
//	    return err
//	}
//	open, err := handler.Handle(ctx, query)
type GetOpenOrdersQuery struct {
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a validated open-orders query.
func NewGetOpenOrdersQuery(tenantID kernel.TenantID) (GetOpenOrdersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetOpenOrdersQuery{}, err
	}

	return GetOpenOrdersQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant whose open orders are requested.
func (q GetOpenOrdersQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// GetOpenOrdersQueryResponse represents one open order in the listing.
type GetOpenOrdersQueryResponse struct {
	ID         kernel.UUID
	Status     order.Status
	ImportedAt *time.Time
}
