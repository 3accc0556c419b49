package queries

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTimelineQueryHandler retrieves an order's event history from the
// database. Events are returned oldest first.
type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTimelineQueryHandler creates a handler for timeline queries.
// Requires a GORM database connection for query execution.
func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

// Handle executes the timeline query. Every order carries at least its
// creation event, so an empty result means the order does not exist for this
// tenant and is reported as errs.ErrObjectNotFound.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) ([]GetOrderTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			e.id,
			e.event_type,
			e.actor,
			e.metadata,
			e.occurred_at
		FROM order_events e
		JOIN orders o ON o.id = e.order_id
		WHERE o.id = ? AND o.tenant_id = ?
		ORDER BY e.occurred_at, e.id
	`, query.OrderID().Bytes(), query.TenantID().UUID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]GetOrderTimelineQueryResponse, 0)

	for rows.Next() {
		var event GetOrderTimelineQueryResponse
		var id uuid.UUID
		var metadata []byte
		var occurredAt time.Time

		err = rows.Scan(&id, &event.EventType, &event.Actor, &metadata, &occurredAt)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.EventID = eventID
		event.OccurredAt = occurredAt

		if len(metadata) > 0 {
			if err = json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return events, nil
}
