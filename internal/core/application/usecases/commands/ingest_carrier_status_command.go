package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrIngestCarrierStatusCommandIsNotConstructed is returned when the command
// was not created via NewIngestCarrierStatusCommand.
var ErrIngestCarrierStatusCommandIsNotConstructed = errors.New(
	"IngestCarrierStatusCommand must be created via NewIngestCarrierStatusCommand constructor",
)

// IngestCarrierStatusCommand carries one carrier webhook delivery: which
// tenant's shipment it targets, the reporting carrier and the raw
// carrier-native status code. Raw codes are passed through untranslated; the
// handler owns normalization.
type IngestCarrierStatusCommand struct {
	tenantID   kernel.TenantID
	shipmentID kernel.UUID
	carrier    shipment.Carrier
	rawCode    string

	guard guard.ConstructorGuard
}

// NewIngestCarrierStatusCommand creates a validated webhook ingestion command.
func NewIngestCarrierStatusCommand(
	tenantID kernel.TenantID,
	shipmentID kernel.UUID,
	carrier shipment.Carrier,
	rawCode string,
) (IngestCarrierStatusCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return IngestCarrierStatusCommand{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return IngestCarrierStatusCommand{}, err
	}
	if err := carrier.Validate(); err != nil {
		return IngestCarrierStatusCommand{}, err
	}
	if rawCode == "" {
		return IngestCarrierStatusCommand{}, errs.NewValueIsRequiredError("rawCode")
	}

	return IngestCarrierStatusCommand{
		tenantID:   tenantID,
		shipmentID: shipmentID,
		carrier:    carrier,
		rawCode:    rawCode,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was properly constructed.
func (c IngestCarrierStatusCommand) Validate() error {
	return c.guard.Validate(ErrIngestCarrierStatusCommandIsNotConstructed)
}

// TenantID returns the tenant the shipment must belong to.
func (c IngestCarrierStatusCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// ShipmentID returns the target shipment's identifier.
func (c IngestCarrierStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Carrier returns the reporting carrier.
func (c IngestCarrierStatusCommand) Carrier() shipment.Carrier {
	return c.carrier
}

// RawCode returns the carrier-native status code as delivered.
func (c IngestCarrierStatusCommand) RawCode() string {
	return c.rawCode
}
