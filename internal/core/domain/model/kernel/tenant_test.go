package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenantID(t *testing.T) {
	t.Run("should wrap a valid UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		tenantID, err := kernel.NewTenantID(id)

		require.NoError(t, err)
		assert.Equal(t, id.String(), tenantID.String())
		assert.True(t, tenantID.UUID().IsEqual(id))
		require.NoError(t, tenantID.Validate())
	})

	t.Run("should reject a zero-value UUID", func(t *testing.T) {
		_, err := kernel.NewTenantID(kernel.UUID{})

		require.Error(t, err)
	})
}

func TestTenantIDFromString(t *testing.T) {
	t.Run("should parse a valid tenant id", func(t *testing.T) {
		tenantID, err := kernel.TenantIDFromString("550e8400-e29b-41d4-a716-446655440000")

		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", tenantID.String())
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		_, err := kernel.TenantIDFromString("not-a-tenant")

		require.Error(t, err)
	})
}

func TestTenantID_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, err := kernel.NewTenantID(id)
	require.NoError(t, err)
	b, err := kernel.NewTenantID(id)
	require.NoError(t, err)
	c, err := kernel.NewTenantID(kernel.NewUUID())
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestTenantID_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var tenantID kernel.TenantID

		err := tenantID.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrTenantIDIsNotConstructed, err)
	})
}
