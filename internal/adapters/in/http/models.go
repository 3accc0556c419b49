package http

import (
	"time"

	"github.com/google/uuid"
)

// Error is the uniform problem body returned for failed requests.
// LegalNextStates is populated only for rejected transitions, so clients can
// render the moves that would have been accepted.
type Error struct {
	Code            int      `json:"code"`
	Message         string   `json:"message"`
	LegalNextStates []string `json:"legalNextStates,omitempty"`
}

// OrderLine is one line item on the wire.
type OrderLine struct {
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	ReservedQty int    `json:"reservedQty,omitempty"`
	ShippedQty  int    `json:"shippedQty,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
// ID is optional; a missing id is generated server side.
type CreateOrderRequest struct {
	ID    *uuid.UUID  `json:"id,omitempty"`
	Lines []OrderLine `json:"lines"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/transition.
// Carrier is required only when target is READY_TO_SHIP.
type TransitionOrderRequest struct {
	Target  string `json:"target"`
	Carrier string `json:"carrier,omitempty"`
}

// OrderResponse is the representation of an order returned by write and read
// endpoints.
type OrderResponse struct {
	ID     uuid.UUID   `json:"id"`
	Status string      `json:"status"`
	Lines  []OrderLine `json:"lines,omitempty"`

	ImportedAt    *time.Time `json:"importedAt,omitempty"`
	ReservedAt    *time.Time `json:"reservedAt,omitempty"`
	ReadyToShipAt *time.Time `json:"readyToShipAt,omitempty"`
	ShippedAt     *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
	ReturnedAt    *time.Time `json:"returnedAt,omitempty"`
}

// NextStatesResponse is the body of GET /api/v1/orders/:id/next-states.
type NextStatesResponse struct {
	Status     string   `json:"status"`
	NextStates []string `json:"nextStates"`
}

// TimelineEvent is one audit entry of GET /api/v1/orders/:id/timeline.
type TimelineEvent struct {
	ID         uuid.UUID         `json:"id"`
	EventType  string            `json:"eventType"`
	Actor      string            `json:"actor"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// CarrierWebhookRequest is the body of POST /api/v1/webhooks/:carrier.
type CarrierWebhookRequest struct {
	ShipmentID uuid.UUID `json:"shipmentId"`
	RawStatus  string    `json:"rawStatus"`
}

// ShipmentResponse reports the shipment state after webhook ingestion.
type ShipmentResponse struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"orderId"`
	Carrier       string    `json:"carrier"`
	Status        string    `json:"status"`
	LastRawStatus string    `json:"lastRawStatus"`
	Changed       bool      `json:"changed"`
}
