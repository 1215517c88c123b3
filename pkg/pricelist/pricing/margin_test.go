package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

func rule(size int, from, to, garage, client int64) models.DiscountRule {
	return models.DiscountRule{
		Size:         size,
		FromPrice:    decimal.NewFromInt(from),
		ToPrice:      decimal.NewFromInt(to),
		MarginGarage: decimal.NewFromInt(garage),
		Margin:       decimal.NewFromInt(client),
	}
}

// size16Rules is the size 16 bucket of the reference margin table.
func size16Rules() []models.DiscountRule {
	return []models.DiscountRule{
		rule(16, 0, 30, 10, 40),
		rule(16, 30, 45, 10, 43),
		rule(16, 45, 60, 10, 45),
		rule(16, 60, 75, 13, 50),
		rule(16, 75, 90, 15, 55),
		rule(16, 90, 105, 15, 60),
		rule(16, 105, 120, 17, 60),
		rule(16, 120, 135, 18, 65),
		rule(16, 135, 150, 17, 65),
		rule(16, 150, 165, 20, 70),
		rule(16, 165, 180, 20, 70),
		rule(16, 180, 99999, 20, 75),
	}
}

func TestNewMarginTable(t *testing.T) {
	rules := append(size16Rules(), rule(10, 0, 30, 10, 30), rule(10, 30, 99999, 10, 32))
	table, err := NewMarginTable(rules)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 16}, table.Sizes())
	assert.Equal(t, rules, table.Rules(), "insertion order is kept")
	assert.True(t, DefaultMaxPrice.Equal(table.MaxPrice()))

	rules[0].Size = 99
	assert.Equal(t, 16, table.Rules()[0].Size, "table owns a copy of the rules")
}

func TestNewMarginTableOutOfOrderInput(t *testing.T) {
	rules := size16Rules()
	rules[0], rules[5] = rules[5], rules[0]
	_, err := NewMarginTable(rules)
	assert.NoError(t, err)
}

func TestNewMarginTableIncoherent(t *testing.T) {
	tests := []struct {
		name  string
		rules []models.DiscountRule
	}{
		{"gap", []models.DiscountRule{rule(15, 0, 30, 12, 40), rule(15, 45, 99999, 12, 40)}},
		{"overlap", []models.DiscountRule{rule(15, 0, 30, 12, 40), rule(15, 25, 99999, 12, 40)}},
		{"does not start at zero", []models.DiscountRule{rule(15, 10, 99999, 12, 40)}},
		{"no terminal rule", []models.DiscountRule{rule(15, 0, 30, 12, 40), rule(15, 30, 500, 12, 40)}},
		{"empty interval", []models.DiscountRule{rule(15, 0, 0, 12, 40), rule(15, 0, 99999, 12, 40)}},
		{"duplicate", []models.DiscountRule{rule(15, 0, 99999, 12, 40), rule(15, 0, 99999, 12, 40)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMarginTable(append(size16Rules(), tt.rules...))
			assert.ErrorIs(t, err, ErrIncoherentMarginTable)
			assert.Contains(t, err.Error(), "size 15")
		})
	}
}

func TestNewMarginTableWithMaxPrice(t *testing.T) {
	rules := []models.DiscountRule{rule(13, 0, 30, 10, 30), rule(13, 30, 1000, 10, 32)}

	_, err := NewMarginTable(rules)
	assert.ErrorIs(t, err, ErrIncoherentMarginTable)

	table, err := NewMarginTable(rules, WithMaxPrice(decimal.NewFromInt(1000)))
	require.NoError(t, err)
	got, err := table.Lookup(13, decimal.NewFromInt(5000))
	require.NoError(t, err)
	assert.True(t, got.FromPrice.Equal(decimal.NewFromInt(30)))
}

func TestLookup(t *testing.T) {
	table, err := NewMarginTable(size16Rules())
	require.NoError(t, err)

	tests := []struct {
		cost     string
		wantFrom int64
	}{
		{"0", 0},
		{"29.99", 0},
		{"30", 30},
		{"80", 75},
		{"180", 180},
		{"99999", 180},
		{"250000", 180},
	}
	for _, tt := range tests {
		got, err := table.Lookup(16, decimal.RequireFromString(tt.cost))
		require.NoError(t, err, tt.cost)
		assert.True(t, decimal.NewFromInt(tt.wantFrom).Equal(got.FromPrice), "cost %s matched %s", tt.cost, got)
	}

	_, err = table.Lookup(99, decimal.NewFromInt(80))
	assert.ErrorIs(t, err, ErrNoMatchingRule)

	_, err = table.Lookup(16, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrNoMatchingRule)
}

func TestLookupAmbiguous(t *testing.T) {
	// built by hand: NewMarginTable would reject the overlap
	table := &MarginTable{
		bySize: map[int][]models.DiscountRule{
			17: {rule(17, 0, 100, 12, 45), rule(17, 50, 99999, 12, 48)},
		},
		maxPrice: DefaultMaxPrice,
	}
	_, err := table.Lookup(17, decimal.NewFromInt(60))
	assert.ErrorIs(t, err, ErrAmbiguousRule)
}
