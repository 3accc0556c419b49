package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler lists a tenant's non-terminal orders.
// Terminality is taken from the lifecycle graph, not hard-coded here, so the
// listing stays correct if the graph gains or loses terminal statuses.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open-order listings.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by import time so the oldest
// open orders surface first.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	terminal := make([]int64, 0)
	for _, status := range order.AllStatuses() {
		if status.IsTerminal() {
			terminal = append(terminal, int64(status))
		}
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			imported_at
		FROM orders
		WHERE tenant_id = ? AND status <> ALL(?)
		ORDER BY imported_at, id
	`, query.TenantID().UUID().Bytes(), pq.Array(terminal)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetOpenOrdersQueryResponse
		var id uuid.UUID
		var status int
		var importedAt *time.Time

		err = rows.Scan(&id, &status, &importedAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.Status = order.Status(status)
		orderResp.ImportedAt = importedAt

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
