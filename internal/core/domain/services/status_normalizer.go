package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/shipment"
)

// ErrUnknownCarrier is the sentinel every UnknownCarrierError unwraps to.
// An unknown carrier is a configuration error of the caller, not a runtime
// condition: it is never surfaced to end users and never falls open.
var ErrUnknownCarrier = errors.New("unknown carrier")

// UnknownCarrierError reports a normalization request for a carrier outside
// the supported set.
type UnknownCarrierError struct {
	Carrier shipment.Carrier
}

// NewUnknownCarrierError builds the error for an unsupported carrier value.
func NewUnknownCarrierError(carrier shipment.Carrier) *UnknownCarrierError {
	return &UnknownCarrierError{Carrier: carrier}
}

func (e *UnknownCarrierError) Error() string {
	return fmt.Sprintf("unknown carrier: %d (%s)", int(e.Carrier), e.Carrier)
}

func (e *UnknownCarrierError) Unwrap() error {
	return ErrUnknownCarrier
}

// StatusNormalizer is a domain service mapping carrier-native tracking codes
// into the internal shipment-status vocabulary. It is a pure function of its
// inputs: no side effects, no I/O, suitable for exhaustive table-driven tests.
//
// Business rules:
//   - Per-carrier lookup tables map known raw codes to internal statuses.
//     Multiple raw codes may alias to the same internal status; this is
//     intentional lossy compression, not a defect.
//   - An unmapped raw code of a known carrier fails open to StatusInTransit.
//     The system prefers under-reporting progress over blocking the pipeline
//     on an unrecognized vendor code. This is deliberate business policy;
//     do not turn it into a hard error.
//   - Terminality is derived from the mapped internal status, so terminal
//     classification stays correct as the raw-code tables evolve.
//
// Example usage:
//
//	normalizer := NewStatusNormalizer()
//	status, err := normalizer.Normalize(shipment.CarrierDHL, "pre-transit")
//	// status == shipment.StatusLabelCreated
type StatusNormalizer struct{}

// NewStatusNormalizer creates a StatusNormalizer.
func NewStatusNormalizer() StatusNormalizer {
	return StatusNormalizer{}
}

// dhlStatusTable maps DHL tracking codes to internal statuses.
func dhlStatusTable() map[string]shipment.Status {
	return map[string]shipment.Status{
		"pre-transit":      shipment.StatusLabelCreated,
		"label_created":    shipment.StatusLabelCreated,
		"picked_up":        shipment.StatusInTransit,
		"in_transit":       shipment.StatusInTransit,
		"arrived_at_hub":   shipment.StatusInTransit,
		"departed_hub":     shipment.StatusInTransit,
		"customs_cleared":  shipment.StatusInTransit,
		"out_for_delivery": shipment.StatusOutForDelivery,
		"with_courier":     shipment.StatusOutForDelivery,
		"delivered":        shipment.StatusDelivered,
		"exception":        shipment.StatusException,
		"customs_hold":     shipment.StatusException,
		"delivery_failed":  shipment.StatusException,
		"return_to_sender": shipment.StatusReturned,
		"returned":         shipment.StatusReturned,
		"cancelled":        shipment.StatusCancelled,
		"voided":           shipment.StatusCancelled,
	}
}

// fedexStatusTable maps FedEx scan codes to internal statuses.
func fedexStatusTable() map[string]shipment.Status {
	return map[string]shipment.Status{
		"OC": shipment.StatusLabelCreated,
		"PU": shipment.StatusInTransit,
		"AR": shipment.StatusInTransit,
		"DP": shipment.StatusInTransit,
		"IT": shipment.StatusInTransit,
		"OD": shipment.StatusOutForDelivery,
		"DL": shipment.StatusDelivered,
		"DE": shipment.StatusException,
		"SE": shipment.StatusException,
		"CA": shipment.StatusCancelled,
		"RS": shipment.StatusReturned,
	}
}

// carrierTable returns the raw-code table for the given carrier.
func carrierTable(carrier shipment.Carrier) (map[string]shipment.Status, error) {
	switch carrier {
	case shipment.CarrierDHL:
		return dhlStatusTable(), nil
	case shipment.CarrierFedEx:
		return fedexStatusTable(), nil
	default:
		return nil, NewUnknownCarrierError(carrier)
	}
}

// Normalize maps a carrier's raw tracking code to the internal vocabulary.
// Unknown raw codes of a known carrier fail open to StatusInTransit; an
// unknown carrier returns *UnknownCarrierError.
func (StatusNormalizer) Normalize(carrier shipment.Carrier, rawCode string) (shipment.Status, error) {
	table, err := carrierTable(carrier)
	if err != nil {
		return shipment.StatusUnknown, err
	}

	if status, ok := table[rawCode]; ok {
		return status, nil
	}

	// Fail open: an unrecognized vendor code must not block the pipeline.
	return shipment.StatusInTransit, nil
}

// IsTerminal reports whether the raw code maps to a terminal internal status.
// The check runs on the mapped status, never on the raw code itself.
func (n StatusNormalizer) IsTerminal(carrier shipment.Carrier, rawCode string) (bool, error) {
	status, err := n.Normalize(carrier, rawCode)
	if err != nil {
		return false, err
	}
	return status.IsTerminal(), nil
}
