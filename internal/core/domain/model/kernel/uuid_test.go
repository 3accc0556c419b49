package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleUUID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()
	other := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	assert.False(t, id.IsEqual(other))
}

func TestUUIDFromString(t *testing.T) {
	acceptedForms := map[string]string{
		"canonical":      sampleUUID,
		"braced":         "{" + sampleUUID + "}",
		"urn":            "urn:uuid:" + sampleUUID,
		"without_dashes": "550e8400e29b41d4a716446655440000",
	}

	for name, input := range acceptedForms {
		t.Run(name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err)
			assert.Equal(t, sampleUUID, id.String())
		})
	}

	t.Run("rejects_malformed_input", func(t *testing.T) {
		for _, input := range []string{
			"",
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			sampleUUID + "-extra",
			"zzze8400-e29b-41d4-a716-446655440000",
		} {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, "input %q", input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round_trips_through_bytes", func(t *testing.T) {
		original, err := kernel.UUIDFromString(sampleUUID)
		require.NoError(t, err)

		raw := original.Bytes()
		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects_short_input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("rejects_the_nil_uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	a, err := kernel.UUIDFromString(sampleUUID)
	require.NoError(t, err)
	b, err := kernel.UUIDFromString(sampleUUID)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.True(t, b.IsEqual(a))
	assert.False(t, a.IsEqual(kernel.NewUUID()))

	var zeroA, zeroB kernel.UUID
	assert.True(t, zeroA.IsEqual(zeroB))
}

func TestUUID_Validate(t *testing.T) {
	require.NoError(t, kernel.NewUUID().Validate())

	var zero kernel.UUID
	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_Bytes(t *testing.T) {
	id := kernel.NewUUID()
	raw := id.Bytes()

	assert.IsType(t, uuid.UUID{}, raw)
	assert.Equal(t, id.String(), raw.String())

	// Bytes returns a copy; scribbling on it must not reach the value object.
	for i := range raw {
		raw[i] = 0xFF
	}
	assert.NotEqual(t, raw.String(), id.String())
	require.NoError(t, id.Validate())
}
