package kernel_test

import (
	"encoding/json"
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonical = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	require.NoError(t, a.Validate())
	assert.False(t, a.IsEqual(b))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should accept the usual spellings", func(t *testing.T) {
		for _, s := range []string{
			canonical,
			"{" + canonical + "}",
			"urn:uuid:" + canonical,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(s)
			require.NoError(t, err, s)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed identifiers as invalid identifiers", func(t *testing.T) {
		for _, s := range []string{"", "listing-42", "550e8400-e29b-41d4-a716", canonical + "-x"} {
			_, err := kernel.UUIDFromString(s)
			require.ErrorIs(t, err, errs.ErrInvalidIdentifier, s)
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round-trip the stored form", func(t *testing.T) {
		want := kernel.NewUUID()
		raw := want.Bytes()

		got, err := kernel.UUIDFromBytes(raw[:])
		require.NoError(t, err)
		assert.True(t, want.IsEqual(got))
	})

	t.Run("should reject a short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})
		assert.ErrorContains(t, err, "invalid UUID format")
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDZeroValue(t *testing.T) {
	var id kernel.UUID

	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
}

func TestUUIDText(t *testing.T) {
	type envelope struct {
		ListingID kernel.UUID `json:"listing_id"`
	}

	t.Run("should encode as the canonical string", func(t *testing.T) {
		id, err := kernel.UUIDFromString(canonical)
		require.NoError(t, err)

		data, err := json.Marshal(envelope{ListingID: id})
		require.NoError(t, err)
		assert.JSONEq(t, `{"listing_id":"`+canonical+`"}`, string(data))
	})

	t.Run("should refuse to decode a malformed identifier", func(t *testing.T) {
		var e envelope
		err := json.Unmarshal([]byte(`{"listing_id":"nope"}`), &e)
		require.ErrorIs(t, err, errs.ErrInvalidIdentifier)
	})
}

func TestUUIDBytesIsACopy(t *testing.T) {
	id := kernel.NewUUID()
	before := id.String()

	raw := id.Bytes()
	raw[0] ^= 0xff

	assert.Equal(t, before, id.String())
}
