// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and timeline events live in their own tables keyed by order id.
type OrderDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`
	Status   int
	Version  int64

	ImportedAt    *time.Time
	ReservedAt    *time.Time
	ReadyToShipAt *time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	ReturnedAt    *time.Time

	Lines  []OrderLineDTO  `gorm:"foreignKey:OrderID;references:ID"`
	Events []OrderEventDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one line item row with its reservation counters.
type OrderLineDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU         string    `gorm:"primaryKey;column:sku"`
	Quantity    int
	ReservedQty int
	ShippedQty  int
}

// TableName specifies the database table name for order line items.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// OrderEventDTO represents one timeline event row. Events are append-only;
// rows are inserted once and never updated.
type OrderEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	EventType  string
	Actor      string
	Metadata   []byte `gorm:"type:jsonb"`
	OccurredAt time.Time
}

// TableName specifies the database table name for order timeline events.
func (OrderEventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	ts := aggregate.Timestamps()

	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		TenantID:      aggregate.TenantID().UUID().Bytes(),
		Status:        int(aggregate.Status()),
		Version:       aggregate.Version(),
		ImportedAt:    ts.ImportedAt,
		ReservedAt:    ts.ReservedAt,
		ReadyToShipAt: ts.ReadyToShipAt,
		ShippedAt:     ts.ShippedAt,
		DeliveredAt:   ts.DeliveredAt,
		CancelledAt:   ts.CancelledAt,
		ReturnedAt:    ts.ReturnedAt,
	}

	for _, line := range aggregate.Lines() {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			OrderID:     dto.ID,
			SKU:         line.SKU(),
			Quantity:    line.Quantity(),
			ReservedQty: line.ReservedQty(),
			ShippedQty:  line.ShippedQty(),
		})
	}

	for _, event := range aggregate.Timeline() {
		metadata, err := json.Marshal(event.Metadata)
		if err != nil {
			return OrderDTO{}, err
		}

		dto.Events = append(dto.Events, OrderEventDTO{
			ID:         event.ID.Bytes(),
			OrderID:    dto.ID,
			EventType:  event.EventType,
			Actor:      event.Actor,
			Metadata:   metadata,
			OccurredAt: event.OccurredAt,
		})
	}

	return dto, nil
}

// toDomain converts database rows to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantUUID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.NewTenantID(tenantUUID)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		lines = append(lines, order.RestoreLineItem(line.SKU, line.Quantity, line.ReservedQty, line.ShippedQty))
	}

	timeline := make([]order.TimelineEvent, 0, len(dto.Events))
	for _, event := range dto.Events {
		eventID, idErr := kernel.UUIDFromBytes(event.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		var metadata map[string]string
		if len(event.Metadata) > 0 {
			if err = json.Unmarshal(event.Metadata, &metadata); err != nil {
				return nil, err
			}
		}

		timeline = append(timeline, order.TimelineEvent{
			ID:         eventID,
			EventType:  event.EventType,
			Actor:      event.Actor,
			Metadata:   metadata,
			OccurredAt: event.OccurredAt,
		})
	}

	return order.RestoreOrder(
		id,
		tenantID,
		order.Status(dto.Status),
		order.Timestamps{
			ImportedAt:    dto.ImportedAt,
			ReservedAt:    dto.ReservedAt,
			ReadyToShipAt: dto.ReadyToShipAt,
			ShippedAt:     dto.ShippedAt,
			DeliveredAt:   dto.DeliveredAt,
			CancelledAt:   dto.CancelledAt,
			ReturnedAt:    dto.ReturnedAt,
		},
		lines,
		timeline,
		dto.Version,
	)
}
