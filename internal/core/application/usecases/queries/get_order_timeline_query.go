package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery retrieves the full audit trail of one order: its
// creation event and every status change, in the sequence they were appended.
type GetOrderTimelineQuery struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTimelineQuery creates a validated timeline query.
func NewGetOrderTimelineQuery(tenantID kernel.TenantID, orderID kernel.UUID) (GetOrderTimelineQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, err
	}

	return GetOrderTimelineQuery{
		tenantID: tenantID,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

// TenantID returns the tenant the caller acts for.
func (q GetOrderTimelineQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// OrderID returns the order whose timeline is requested.
func (q GetOrderTimelineQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderTimelineQueryResponse is one timeline entry as stored.
type GetOrderTimelineQueryResponse struct {
	EventID    kernel.UUID
	EventType  string
	Actor      string
	Metadata   map[string]string
	OccurredAt time.Time
}
