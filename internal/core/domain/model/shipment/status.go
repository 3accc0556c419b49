package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the internal shipment-status vocabulary that carrier-native
// tracking codes are normalized into. It is a separate enum from the order
// status: shipments track the parcel, orders track the business lifecycle.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusLabelCreated indicates the label exists but the carrier has not
	// yet collected the parcel.
	StatusLabelCreated

	// StatusInTransit indicates the parcel is moving through the network.
	// Unmapped raw codes of a known carrier fail open to this status.
	StatusInTransit

	// StatusOutForDelivery indicates last-mile delivery is underway.
	StatusOutForDelivery

	// StatusDelivered indicates successful delivery. Terminal.
	StatusDelivered

	// StatusException indicates a carrier-reported problem (customs hold,
	// damaged parcel, address issue). Not terminal.
	StatusException

	// StatusReturned indicates the parcel went back to the sender. Terminal.
	StatusReturned

	// StatusCancelled indicates the shipment was voided. Terminal.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusLabelCreated:   "LABEL_CREATED",
		StatusInTransit:      "IN_TRANSIT",
		StatusOutForDelivery: "OUT_FOR_DELIVERY",
		StatusDelivered:      "DELIVERED",
		StatusException:      "EXCEPTION",
		StatusReturned:       "RETURNED",
		StatusCancelled:      "CANCELLED",
	}
}

// AllStatuses returns every valid internal shipment status.
func AllStatuses() []Status {
	return []Status{
		StatusLabelCreated, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusException, StatusReturned, StatusCancelled,
	}
}

// Validate checks that the Status is a member of the enum.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status is invalid",
			fmt.Errorf("%d is not a valid shipment status", s),
		)
	}
	return nil
}

// String returns the wire name of the status, e.g. "OUT_FOR_DELIVERY".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status belongs to the fixed terminal set
// {Delivered, Cancelled, Returned}. Terminality is always a function of the
// mapped internal status, never of a raw carrier code.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusReturned:
		return true
	default:
		return false
	}
}
