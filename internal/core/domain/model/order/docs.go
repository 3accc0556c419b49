// Package order provides domain entities and business logic for the order
// lifecycle. It implements the Order aggregate root, the status state machine,
// the append-only event timeline, and the line items whose counters drive
// idempotent inventory reservation.
//
// The package includes:
//   - Order: The aggregate root that manages identity, status, timestamps, lines and timeline
//   - Status: A state machine over a fixed transition graph with side-effect directives
//   - LineItem: An ordered position with reservation and shipment counters
//   - TimelineEvent: One entry of the append-only audit timeline
//
// Key business rules:
//   - The transition graph is the single source of truth for legal moves
//   - Cancelled and Returned are the only strictly terminal statuses
//   - Failed permits retry (InTransit), Cancelled and Returned
//   - Delivered permits Returned within the return window
//   - Reservation effects are idempotent via per-line counters
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
