package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetValidNextStatesQueryHandler reads an order's current status and derives
// the reachable statuses from the lifecycle graph. The graph itself lives in
// the domain layer; the handler only fetches the current position.
type GetValidNextStatesQueryHandler struct {
	db *gorm.DB
}

// NewGetValidNextStatesQueryHandler creates a handler for next-state queries.
// Requires a GORM database connection for query execution.
func NewGetValidNextStatesQueryHandler(db *gorm.DB) GetValidNextStatesQueryHandler {
	return GetValidNextStatesQueryHandler{db: db}
}

// Handle executes the query. An order belonging to another tenant is
// indistinguishable from a missing one: both return errs.ErrObjectNotFound.
func (h GetValidNextStatesQueryHandler) Handle(
	ctx context.Context,
	query GetValidNextStatesQuery,
) (GetValidNextStatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetValidNextStatesQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM orders
		WHERE id = ? AND tenant_id = ?
	`, query.OrderID().Bytes(), query.TenantID().UUID().Bytes()).Rows()
	if err != nil {
		return GetValidNextStatesQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetValidNextStatesQueryResponse{}, err
		}
		return GetValidNextStatesQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var status int
	if err = rows.Scan(&status); err != nil {
		return GetValidNextStatesQueryResponse{}, err
	}

	current := order.Status(status)
	if err = current.Validate(); err != nil {
		return GetValidNextStatesQueryResponse{}, err
	}

	return GetValidNextStatesQueryResponse{
		OrderID:    query.OrderID(),
		Status:     current,
		NextStates: current.ValidNextStates(),
	}, nil
}
