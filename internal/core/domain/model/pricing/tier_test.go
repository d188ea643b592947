package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/pricing"
)

func TestNewTier(t *testing.T) {
	validID := kernel.NewUUID()
	validPrice := decimal.NewFromInt(1200)

	t.Run("should create a valid tier", func(t *testing.T) {
		tier, err := pricing.NewTier(validID, "Netherlands", "Amsterdam", 0, 50, validPrice)

		require.NoError(t, err)
		require.NoError(t, tier.Validate())
		assert.True(t, tier.ID().IsEqual(validID))
		assert.Equal(t, "Netherlands", tier.Country())
		assert.Equal(t, "Amsterdam", tier.City())
		assert.Equal(t, 0, tier.VolumeMin())
		assert.Equal(t, 50, tier.VolumeMax())
		assert.True(t, tier.BasePrice().Equal(validPrice))
	})

	t.Run("should fail with blank location", func(t *testing.T) {
		tier, err := pricing.NewTier(validID, "", "Amsterdam", 0, 50, validPrice)
		require.Error(t, err)
		assert.Nil(t, tier)

		tier, err = pricing.NewTier(validID, "Netherlands", "", 0, 50, validPrice)
		require.Error(t, err)
		assert.Nil(t, tier)
	})

	t.Run("should fail with inverted volume range", func(t *testing.T) {
		tier, err := pricing.NewTier(validID, "Netherlands", "Amsterdam", 60, 50, validPrice)

		require.Error(t, err)
		assert.Nil(t, tier)
	})

	t.Run("should fail with negative volume minimum", func(t *testing.T) {
		tier, err := pricing.NewTier(validID, "Netherlands", "Amsterdam", -1, 50, validPrice)

		require.Error(t, err)
		assert.Nil(t, tier)
	})

	t.Run("should fail with non-positive base price", func(t *testing.T) {
		tier, err := pricing.NewTier(validID, "Netherlands", "Amsterdam", 0, 50, decimal.Zero)

		require.Error(t, err)
		assert.Nil(t, tier)
	})
}

func TestTier_Matching(t *testing.T) {
	tier, err := pricing.NewTier(kernel.NewUUID(), "Netherlands", "Amsterdam", 10, 50, decimal.NewFromInt(1200))
	require.NoError(t, err)

	t.Run("should match location case-insensitively", func(t *testing.T) {
		assert.True(t, tier.MatchesLocation("netherlands", "AMSTERDAM"))
		assert.False(t, tier.MatchesLocation("Netherlands", "Rotterdam"))
	})

	t.Run("should treat the volume range as inclusive on both ends", func(t *testing.T) {
		assert.True(t, tier.ContainsVolume(10))
		assert.True(t, tier.ContainsVolume(50))
		assert.False(t, tier.ContainsVolume(9))
		assert.False(t, tier.ContainsVolume(51))
	})
}

func TestEstimate(t *testing.T) {
	t.Run("should compute margin and total to two decimal places", func(t *testing.T) {
		quote := pricing.Estimate(decimal.NewFromInt(1000), decimal.NewFromInt(25))

		assert.Equal(t, "1000.00", quote.BasePrice.StringFixed(2))
		assert.Equal(t, "25.00", quote.MarginPercent.StringFixed(2))
		assert.Equal(t, "250.00", quote.MarginAmount.StringFixed(2))
		assert.Equal(t, "1250.00", quote.Total.StringFixed(2))
	})

	t.Run("should round half up at the second decimal", func(t *testing.T) {
		quote := pricing.Estimate(decimal.RequireFromString("999.99"), decimal.RequireFromString("12.5"))

		assert.Equal(t, "125.00", quote.MarginAmount.StringFixed(2))
		assert.Equal(t, "1124.99", quote.Total.StringFixed(2))
	})

	t.Run("should yield the base price at zero margin", func(t *testing.T) {
		quote := pricing.Estimate(decimal.NewFromInt(800), decimal.Zero)

		assert.Equal(t, "0.00", quote.MarginAmount.StringFixed(2))
		assert.Equal(t, "800.00", quote.Total.StringFixed(2))
	})

	t.Run("should default to twenty-five percent", func(t *testing.T) {
		assert.Equal(t, "25", pricing.DefaultMarginPercent.String())
	})
}
