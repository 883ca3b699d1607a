package partner_test

import (
	"testing"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidPartner(t *testing.T) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(kernel.NewUUID(), "Alice")
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func TestNewPartner(t *testing.T) {
	t.Run("should create offline active partner", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := partner.NewPartner(id, "Alice")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "Alice", p.Name())
		assert.False(t, p.IsOnline())
		assert.True(t, p.IsActive())
		assert.True(t, p.Rating().IsZero())
		assert.Equal(t, 0, p.RatingsCount())
		assert.Equal(t, 0, p.TotalDeliveries())
	})

	t.Run("should return joined errors for invalid input", func(t *testing.T) {
		var invalidID kernel.UUID

		p, err := partner.NewPartner(invalidID, "")

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, partner.ErrNameIsRequired)
	})
}

func TestRestorePartner(t *testing.T) {
	t.Run("should restore state", func(t *testing.T) {
		p, err := partner.RestorePartner(kernel.NewUUID(), "Bob", true, true, 9, 2, 7)

		require.NoError(t, err)
		assert.True(t, p.IsOnline())
		assert.Equal(t, "4.5", p.Rating().String())
		assert.Equal(t, 7, p.TotalDeliveries())
	})

	t.Run("should reject score sum without scores", func(t *testing.T) {
		_, err := partner.RestorePartner(kernel.NewUUID(), "Bob", true, true, 3, 0, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject score sum out of range", func(t *testing.T) {
		_, err := partner.RestorePartner(kernel.NewUUID(), "Bob", true, true, 6, 1, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject negative counters", func(t *testing.T) {
		_, err := partner.RestorePartner(kernel.NewUUID(), "Bob", true, true, 0, -1, -1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestPartner_ValidateAvailable(t *testing.T) {
	tests := []struct {
		name   string
		online bool
		active bool
		ok     bool
	}{
		{"online and active", true, true, true},
		{"offline", false, true, false},
		{"deactivated", true, false, false},
		{"offline and deactivated", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := createValidPartner(t)
			p.SetAvailability(tt.online, tt.active)

			err := p.ValidateAvailable()

			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, partner.ErrPartnerUnavailable)
		})
	}
}

func TestPartner_CompleteDelivery(t *testing.T) {
	p := createValidPartner(t)

	p.CompleteDelivery()
	p.CompleteDelivery()

	assert.Equal(t, 2, p.TotalDeliveries())
}

func TestPartner_Rate(t *testing.T) {
	p := createValidPartner(t)

	require.NoError(t, p.Rate(5))
	assert.Equal(t, "5", p.Rating().String())

	require.NoError(t, p.Rate(4))
	assert.Equal(t, "4.5", p.Rating().String())

	require.NoError(t, p.Rate(2))
	assert.True(t, p.Rating().Equal(decimal.RequireFromString("3.67")))
	assert.Equal(t, 3, p.RatingsCount())

	require.ErrorIs(t, p.Rate(0), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, p.Rate(6), errs.ErrValueIsOutOfRange)
	assert.Equal(t, 3, p.RatingsCount())
}

func TestPartner_Rate_AverageOfAllScores(t *testing.T) {
	p := createValidPartner(t)

	for _, score := range []int{1, 1, 1, 1, 1, 2, 1} {
		require.NoError(t, p.Rate(score))
	}

	assert.Equal(t, 8, p.RatingsSum())
	assert.Equal(t, 7, p.RatingsCount())
	assert.Equal(t, "1.14", p.Rating().StringFixed(2))

	restored, err := partner.RestorePartner(p.ID(), p.Name(), false, true, p.RatingsSum(), p.RatingsCount(), 0)
	require.NoError(t, err)
	require.NoError(t, restored.Rate(5))
	assert.Equal(t, "1.62", restored.Rating().StringFixed(2))
}
