package shipment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrTenantMismatch is returned when a shipment's tenant differs from its
	// order's tenant. Referential tenant consistency is enforced at creation.
	ErrTenantMismatch = errors.New("shipment tenant must equal its order's tenant")
)

// Shipment is the aggregate tracking one parcel for one order. It is created
// when the order reaches ReadyToShip and afterwards mutated only by
// webhook-driven status normalization or label-creation side effects.
// Shipments are never deleted, only transitioned to a terminal status.
type Shipment struct {
	id       kernel.UUID
	orderID  kernel.UUID
	tenantID kernel.TenantID

	carrier       Carrier
	status        Status
	lastRawStatus string

	// labelRef is an opaque handle to the label artifact; nil until label
	// creation succeeds.
	labelRef *string

	createdAt time.Time
	updatedAt time.Time

	changed       bool
	isConstructed bool
}

// NewShipment creates a shipment for an order with the given carrier.
// The orderTenantID parameter is the owning order's tenant; passing a
// different tenant for the shipment is a construction error.
func NewShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	tenantID kernel.TenantID,
	orderTenantID kernel.TenantID,
	carrier Carrier,
) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := carrier.Validate(); err != nil {
		return nil, err
	}
	if !tenantID.IsEqual(orderTenantID) {
		return nil, ErrTenantMismatch
	}

	now := time.Now().UTC()
	return &Shipment{
		id:            id,
		orderID:       orderID,
		tenantID:      tenantID,
		carrier:       carrier,
		status:        StatusLabelCreated,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreShipment rehydrates a shipment from persistence.
func RestoreShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	tenantID kernel.TenantID,
	carrier Carrier,
	status Status,
	lastRawStatus string,
	labelRef *string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := carrier.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Shipment{
		id:            id,
		orderID:       orderID,
		tenantID:      tenantID,
		carrier:       carrier,
		status:        status,
		lastRawStatus: lastRawStatus,
		labelRef:      labelRef,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Shipment was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the owning order's identifier.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// TenantID returns the owning tenant.
func (s *Shipment) TenantID() kernel.TenantID {
	return s.tenantID
}

// Carrier returns the carrier this shipment travels with.
func (s *Shipment) Carrier() Carrier {
	return s.carrier
}

// Status returns the current internal shipment status.
func (s *Shipment) Status() Status {
	return s.status
}

// LastRawStatus returns the raw carrier code last seen for this shipment.
func (s *Shipment) LastRawStatus() string {
	return s.lastRawStatus
}

// LabelRef returns the opaque label artifact handle, nil before label creation.
func (s *Shipment) LabelRef() *string {
	return s.labelRef
}

// CreatedAt returns the shipment creation time.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the last mutation time.
func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// Changed reports whether the last ApplyCarrierStatus call mutated the
// shipment. A re-delivered webhook reporting the already-current status
// leaves Changed false so callers can skip persistence and side effects.
func (s *Shipment) Changed() bool {
	return s.changed
}

// AttachLabel records a successful label creation.
func (s *Shipment) AttachLabel(labelRef string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if labelRef == "" {
		return errs.NewValueIsRequiredError("labelRef")
	}

	s.labelRef = &labelRef
	s.updatedAt = time.Now().UTC()
	s.changed = true
	return nil
}

// ApplyCarrierStatus updates the shipment with a normalized carrier report.
// Re-delivery of the same status with the same raw code is a recorded no-op:
// the shipment stays untouched and Changed reports false.
func (s *Shipment) ApplyCarrierStatus(status Status, rawCode string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	if status == s.status && rawCode == s.lastRawStatus {
		s.changed = false
		return nil
	}

	s.status = status
	s.lastRawStatus = rawCode
	s.updatedAt = time.Now().UTC()
	s.changed = true
	return nil
}
