package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine over a fixed transition graph that is the
// single source of truth for every business-legal move. No caller may permit
// a transition that is not an edge in the graph.
//
// Notable edges:
//   - Failed is not purely terminal: it allows InTransit (retry),
//     Cancelled (give up) and Returned (send back).
//   - Delivered allows Returned (post-delivery return window).
//   - InTransit may skip OutForDelivery and go straight to Delivered,
//     since carriers do not always report the intermediate step.
//
// Cancelled and Returned are the only strictly terminal statuses.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status when an order is imported.
	New

	// Reserved indicates inventory has been held for the order's lines.
	Reserved

	// ReadyToShip indicates the order is packed and awaiting a shipping label.
	// Entering this status triggers shipment creation.
	ReadyToShip

	// LabelCreated indicates the carrier label has been produced.
	LabelCreated

	// PickedUp indicates the carrier has collected the parcel.
	PickedUp

	// InTransit indicates the parcel is moving through the carrier network.
	InTransit

	// OutForDelivery indicates the parcel is on the last-mile vehicle.
	OutForDelivery

	// Delivered indicates successful delivery. Still allows Returned.
	Delivered

	// Cancelled is a strictly terminal status. Reservation is released on entry.
	Cancelled

	// Failed indicates a delivery failure. Not terminal: retry, cancel and
	// return are all legal follow-ups.
	Failed

	// Returned is a strictly terminal status. Reservation is released on entry.
	Returned
)

// ReservationEffect is the inventory side effect implied by entering a status.
type ReservationEffect int

const (
	// NoEffect means the reservation already holds or was released earlier.
	NoEffect ReservationEffect = iota

	// Reserve means inventory must be held for the order's lines.
	Reserve

	// Release means the reservation must be given back to the pool.
	Release
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		New:            "NEW",
		Reserved:       "RESERVED",
		ReadyToShip:    "READY_TO_SHIP",
		LabelCreated:   "LABEL_CREATED",
		PickedUp:       "PICKED_UP",
		InTransit:      "IN_TRANSIT",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Failed:         "FAILED",
		Returned:       "RETURNED",
	}
}

// transitionGraph returns the full adjacency table of legal moves.
// Expressed as pure data so tests can enumerate it exhaustively.
func transitionGraph() map[Status][]Status {
	return map[Status][]Status{
		New:            {Reserved, Cancelled, Failed},
		Reserved:       {ReadyToShip, Cancelled, Failed},
		ReadyToShip:    {LabelCreated, Cancelled, Failed},
		LabelCreated:   {PickedUp, InTransit, Cancelled, Failed},
		PickedUp:       {InTransit, Failed},
		InTransit:      {OutForDelivery, Delivered, Failed},
		OutForDelivery: {Delivered, Failed},
		Delivered:      {Returned},
		Cancelled:      {},
		Failed:         {InTransit, Cancelled, Returned},
		Returned:       {},
	}
}

// AllStatuses returns every valid status in lifecycle order.
// Unknown is excluded.
func AllStatuses() []Status {
	return []Status{
		New, Reserved, ReadyToShip, LabelCreated, PickedUp, InTransit,
		OutForDelivery, Delivered, Cancelled, Failed, Returned,
	}
}

// Validate checks if the Status value is a member of the enum.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := transitionGraph()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "READY_TO_SHIP".
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire name back into a Status.
// Returns an error for names outside the enum.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status name", s),
	)
}

// CanTransition reports whether moving from s to "to" is an edge in the graph.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitionGraph()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidNextStates returns every status reachable from s in one legal move.
// Terminal statuses return an empty slice, never nil.
func (s Status) ValidNextStates() []Status {
	next := transitionGraph()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether s has no outgoing edges.
// True only for Cancelled and Returned; Failed stays non-terminal.
func (s Status) IsTerminal() bool {
	next, ok := transitionGraph()[s]
	return ok && len(next) == 0
}

// ReservationEffect returns the inventory directive implied by entering s.
// New and Reserved hold inventory, Cancelled and Returned release it,
// everything else leaves the ledger alone. Callers must apply the effect
// idempotently: re-entering a reserving or releasing status must not
// double-reserve or double-release.
func (s Status) ReservationEffect() ReservationEffect {
	switch s {
	case New, Reserved:
		return Reserve
	case Cancelled, Returned:
		return Release
	default:
		return NoEffect
	}
}

// TimestampField returns the audit timestamp slot stamped on entering s.
// LabelCreated, PickedUp, InTransit and OutForDelivery share the shippedAt
// slot, which is intentionally coarse. Statuses without a slot return
// ok == false and the caller must not stamp anything.
func (s Status) TimestampField() (field string, ok bool) {
	switch s {
	case New:
		return "importedAt", true
	case Reserved:
		return "reservedAt", true
	case ReadyToShip:
		return "readyToShipAt", true
	case LabelCreated, PickedUp, InTransit, OutForDelivery:
		return "shippedAt", true
	case Delivered:
		return "deliveredAt", true
	case Cancelled:
		return "cancelledAt", true
	case Returned:
		return "returnedAt", true
	default:
		return "", false
	}
}

// ErrIllegalTransition is the sentinel every IllegalTransitionError unwraps to.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError reports a requested move that is not an edge in the
// transition graph. It carries the legal next states so a caller can
// self-correct without a second round trip.
type IllegalTransitionError struct {
	From            Status
	To              Status
	LegalNextStates []Status
}

// NewIllegalTransitionError builds the error for a rejected (from, to) pair.
func NewIllegalTransitionError(from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{
		From:            from,
		To:              to,
		LegalNextStates: from.ValidNextStates(),
	}
}

func (e *IllegalTransitionError) Error() string {
	names := make([]string, len(e.LegalNextStates))
	for i, s := range e.LegalNextStates {
		names[i] = s.String()
	}
	return fmt.Sprintf("illegal status transition: %s -> %s (legal next states: [%s])",
		e.From, e.To, strings.Join(names, ", "))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
