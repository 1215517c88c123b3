package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

func TestResolvePrice(t *testing.T) {
	table, err := NewMarginTable(size16Rules())
	require.NoError(t, err)

	garage, client, err := table.ResolvePrice(16, decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.Equal(t, "92.00", garage.StringFixed(2))
	assert.Equal(t, "124.00", client.StringFixed(2))

	garage, client, err = table.ResolvePrice(16, decimal.RequireFromString("33.35"))
	require.NoError(t, err)
	assert.Equal(t, "36.68", garage.StringFixed(2)) // 36.685 half to even
	assert.Equal(t, "47.69", client.StringFixed(2)) // 47.6905

	_, _, err = table.ResolvePrice(99, decimal.NewFromInt(80))
	assert.ErrorIs(t, err, ErrNoMatchingRule)
}

func TestQuotePrice(t *testing.T) {
	table, err := NewMarginTable(size16Rules())
	require.NoError(t, err)

	q, err := table.QuotePrice(16, decimal.NewFromInt(80))
	require.NoError(t, err)
	want, err := table.Lookup(16, decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.Equal(t, want, q.Rule)
	assert.Equal(t, "92.00", q.Garage.StringFixed(2))
	assert.Equal(t, "124.00", q.Client.StringFixed(2))

	q, err = table.QuotePrice(99, decimal.NewFromInt(80))
	assert.ErrorIs(t, err, ErrNoMatchingRule)
	assert.Equal(t, Quote{}, q)
}

func TestResolve(t *testing.T) {
	table, err := NewMarginTable(size16Rules())
	require.NoError(t, err)

	tire := models.Tire{
		Brand:     "Michelin",
		EAN:       "3528701234567",
		Dimension: models.Dimension{Diameter: 16},
		NetCost:   decimal.NewFromInt(80),
	}
	got, err := table.Resolve(tire)
	require.NoError(t, err)
	assert.True(t, got.Resolved())
	assert.Equal(t, "92.00", got.GaragePrice.Decimal.StringFixed(2))
	assert.Equal(t, "124.00", got.ClientPrice.Decimal.StringFixed(2))
	assert.False(t, tire.Resolved(), "input tire is not mutated")

	tire.Diameter = 99
	got, err = table.Resolve(tire)
	assert.ErrorIs(t, err, ErrNoMatchingRule)
	assert.False(t, got.Resolved())
	assert.False(t, got.GaragePrice.Valid)
	assert.False(t, got.ClientPrice.Valid)
}
