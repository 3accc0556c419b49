package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Carrier identifies the shipping carrier a shipment travels with.
// The set is closed: an unrecognized carrier is a configuration error of the
// caller, never a runtime condition to fail open on.
type Carrier int

const (
	// CarrierUnknown represents an invalid or undefined carrier.
	CarrierUnknown Carrier = iota

	// CarrierDHL is DHL Parcel.
	CarrierDHL

	// CarrierFedEx is Federal Express.
	CarrierFedEx
)

// getCarrierStrings returns a map of Carrier values to their wire names.
func getCarrierStrings() map[Carrier]string {
	return map[Carrier]string{
		CarrierUnknown: "UNKNOWN",
		CarrierDHL:     "DHL",
		CarrierFedEx:   "FEDEX",
	}
}

// AllCarriers returns every supported carrier.
func AllCarriers() []Carrier {
	return []Carrier{CarrierDHL, CarrierFedEx}
}

// Validate checks that the Carrier is a member of the closed set.
func (c Carrier) Validate() error {
	if c != CarrierDHL && c != CarrierFedEx {
		return errs.NewValueIsInvalidErrorWithCause(
			"carrier is invalid",
			fmt.Errorf("%d is not a valid carrier", c),
		)
	}
	return nil
}

// String returns the wire name of the carrier, e.g. "DHL".
func (c Carrier) String() string {
	if str, ok := getCarrierStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}

// CarrierFromString parses a wire name back into a Carrier.
func CarrierFromString(s string) (Carrier, error) {
	for carrier, name := range getCarrierStrings() {
		if carrier != CarrierUnknown && name == s {
			return carrier, nil
		}
	}
	return CarrierUnknown, errs.NewValueIsInvalidErrorWithCause(
		"carrier is invalid",
		fmt.Errorf("%q is not a valid carrier name", s),
	)
}
