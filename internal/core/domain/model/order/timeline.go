package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Event types appended to an order's timeline.
const (
	EventTypeCreated       = "order.created"
	EventTypeStatusChanged = "order.status_changed"
)

// TimelineEvent is one entry in an order's append-only audit timeline.
// The timeline is monotonically non-decreasing in time and never truncated:
// events are only ever appended, never rewritten or removed.
type TimelineEvent struct {
	ID         kernel.UUID
	EventType  string
	Actor      string
	Metadata   map[string]string
	OccurredAt time.Time
}

// newTimelineEvent builds an event stamped with the current time.
func newTimelineEvent(eventType, actor string, metadata map[string]string) TimelineEvent {
	return TimelineEvent{
		ID:         kernel.NewUUID(),
		EventType:  eventType,
		Actor:      actor,
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	}
}
