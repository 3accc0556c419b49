package shipment_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTenant(t *testing.T) kernel.TenantID {
	t.Helper()
	tenantID, err := kernel.NewTenantID(kernel.NewUUID())
	require.NoError(t, err)
	return tenantID
}

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	tenantID := mustTenant(t)
	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), tenantID, tenantID, shipment.CarrierDHL)
	require.NoError(t, err)
	return s
}

func TestNewShipment(t *testing.T) {
	t.Run("should start in LabelCreated without a label ref", func(t *testing.T) {
		s := newTestShipment(t)

		assert.Equal(t, shipment.StatusLabelCreated, s.Status())
		assert.Nil(t, s.LabelRef())
		assert.Empty(t, s.LastRawStatus())
		assert.False(t, s.CreatedAt().IsZero())
	})

	t.Run("should reject a tenant differing from the order's", func(t *testing.T) {
		_, err := shipment.NewShipment(
			kernel.NewUUID(), kernel.NewUUID(), mustTenant(t), mustTenant(t), shipment.CarrierFedEx,
		)
		require.ErrorIs(t, err, shipment.ErrTenantMismatch)
	})

	t.Run("should reject an unknown carrier", func(t *testing.T) {
		tenantID := mustTenant(t)
		_, err := shipment.NewShipment(
			kernel.NewUUID(), kernel.NewUUID(), tenantID, tenantID, shipment.CarrierUnknown,
		)
		require.Error(t, err)
	})
}

func TestShipment_ApplyCarrierStatus(t *testing.T) {
	t.Run("should record a new status and raw code", func(t *testing.T) {
		s := newTestShipment(t)

		err := s.ApplyCarrierStatus(shipment.StatusInTransit, "in_transit")

		require.NoError(t, err)
		assert.True(t, s.Changed())
		assert.Equal(t, shipment.StatusInTransit, s.Status())
		assert.Equal(t, "in_transit", s.LastRawStatus())
	})

	t.Run("identical re-delivery is a no-op", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.ApplyCarrierStatus(shipment.StatusInTransit, "in_transit"))
		updatedAt := s.UpdatedAt()

		err := s.ApplyCarrierStatus(shipment.StatusInTransit, "in_transit")

		require.NoError(t, err)
		assert.False(t, s.Changed())
		assert.Equal(t, updatedAt, s.UpdatedAt())
	})

	t.Run("same status under a different raw code is still recorded", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.ApplyCarrierStatus(shipment.StatusInTransit, "picked_up"))

		err := s.ApplyCarrierStatus(shipment.StatusInTransit, "in_transit")

		require.NoError(t, err)
		assert.True(t, s.Changed())
		assert.Equal(t, "in_transit", s.LastRawStatus())
	})

	t.Run("should reject an invalid status", func(t *testing.T) {
		s := newTestShipment(t)
		require.Error(t, s.ApplyCarrierStatus(shipment.StatusUnknown, "whatever"))
	})
}

func TestShipment_AttachLabel(t *testing.T) {
	t.Run("should attach an opaque label handle", func(t *testing.T) {
		s := newTestShipment(t)

		err := s.AttachLabel("labels/2026/08/abc123.pdf")

		require.NoError(t, err)
		require.NotNil(t, s.LabelRef())
		assert.Equal(t, "labels/2026/08/abc123.pdf", *s.LabelRef())
	})

	t.Run("should reject an empty handle", func(t *testing.T) {
		s := newTestShipment(t)
		require.Error(t, s.AttachLabel(""))
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[shipment.Status]bool{
		shipment.StatusDelivered: true,
		shipment.StatusCancelled: true,
		shipment.StatusReturned:  true,
	}

	for _, s := range shipment.AllStatuses() {
		t.Run(s.String(), func(t *testing.T) {
			assert.Equal(t, terminal[s], s.IsTerminal())
		})
	}
}

func TestCarrier_StringRoundTrip(t *testing.T) {
	for _, c := range shipment.AllCarriers() {
		parsed, err := shipment.CarrierFromString(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := shipment.CarrierFromString("UPS")
	require.Error(t, err)
}
