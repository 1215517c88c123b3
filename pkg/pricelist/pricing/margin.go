package pricing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// DefaultMaxPrice is the sentinel upper bound that marks the open-ended
// terminal bucket of a size.
var DefaultMaxPrice = decimal.NewFromInt(99999)

var (
	// ErrIncoherentMarginTable indicates a gap or overlap in a size's price intervals.
	ErrIncoherentMarginTable = errors.New("incoherent margin table")
	// ErrNoMatchingRule indicates no rule covers the tire's diameter and net cost.
	ErrNoMatchingRule = errors.New("no matching margin rule")
	// ErrAmbiguousRule indicates more than one rule covers the lookup key.
	ErrAmbiguousRule = errors.New("ambiguous margin rule")
)

// Option configures a MarginTable.
type Option func(*MarginTable)

// WithMaxPrice overrides the terminal bucket sentinel.
func WithMaxPrice(max decimal.Decimal) Option {
	return func(t *MarginTable) {
		t.maxPrice = max
	}
}

// MarginTable is an immutable, insertion-ordered set of DiscountRules
// indexed by size. It is safe for concurrent use once built.
type MarginTable struct {
	rules    []models.DiscountRule
	bySize   map[int][]models.DiscountRule
	maxPrice decimal.Decimal
}

// NewMarginTable copies rules into a lookup table and checks that, for every
// size present, the intervals start at 0, are contiguous and non-overlapping,
// and end at the sentinel.
func NewMarginTable(rules []models.DiscountRule, opts ...Option) (*MarginTable, error) {
	t := &MarginTable{
		rules:    append([]models.DiscountRule(nil), rules...),
		bySize:   make(map[int][]models.DiscountRule),
		maxPrice: DefaultMaxPrice,
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, r := range t.rules {
		t.bySize[r.Size] = append(t.bySize[r.Size], r)
	}
	for _, size := range t.Sizes() {
		if err := t.checkCoverage(size); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *MarginTable) checkCoverage(size int) error {
	bucket := append([]models.DiscountRule(nil), t.bySize[size]...)
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].FromPrice.LessThan(bucket[j].FromPrice)
	})

	expected := decimal.Zero
	for _, r := range bucket {
		if !r.FromPrice.LessThan(r.ToPrice) {
			return fmt.Errorf("%w: size %d: empty interval [%s, %s)", ErrIncoherentMarginTable, size, r.FromPrice, r.ToPrice)
		}
		switch cmp := r.FromPrice.Cmp(expected); {
		case cmp > 0:
			return fmt.Errorf("%w: size %d: gap [%s, %s)", ErrIncoherentMarginTable, size, expected, r.FromPrice)
		case cmp < 0:
			return fmt.Errorf("%w: size %d: overlap at %s", ErrIncoherentMarginTable, size, r.FromPrice)
		}
		expected = r.ToPrice
	}
	if expected.LessThan(t.maxPrice) {
		return fmt.Errorf("%w: size %d: not covered from %s", ErrIncoherentMarginTable, size, expected)
	}
	return nil
}

// Rules returns the rules in insertion order.
func (t *MarginTable) Rules() []models.DiscountRule {
	return append([]models.DiscountRule(nil), t.rules...)
}

// Sizes returns the distinct sizes in ascending order.
func (t *MarginTable) Sizes() []int {
	sizes := make([]int, 0, len(t.bySize))
	for size := range t.bySize {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// MaxPrice returns the terminal bucket sentinel.
func (t *MarginTable) MaxPrice() decimal.Decimal {
	return t.maxPrice
}

// Lookup finds the unique rule for size whose interval holds netCost. The
// terminal rule of a size, reaching the sentinel, has no upper bound.
func (t *MarginTable) Lookup(size int, netCost decimal.Decimal) (models.DiscountRule, error) {
	bucket, ok := t.bySize[size]
	if !ok {
		return models.DiscountRule{}, fmt.Errorf("%w: no bucket for size %d", ErrNoMatchingRule, size)
	}

	var (
		match models.DiscountRule
		found int
	)
	for _, r := range bucket {
		if t.matches(r, netCost) {
			match = r
			found++
		}
	}
	switch found {
	case 0:
		return models.DiscountRule{}, fmt.Errorf("%w: size %d, net cost %s", ErrNoMatchingRule, size, netCost)
	case 1:
		return match, nil
	default:
		return models.DiscountRule{}, fmt.Errorf("%w: size %d, net cost %s matches %d rules", ErrAmbiguousRule, size, netCost, found)
	}
}

func (t *MarginTable) matches(r models.DiscountRule, price decimal.Decimal) bool {
	if r.ToPrice.GreaterThanOrEqual(t.maxPrice) {
		return price.GreaterThanOrEqual(r.FromPrice)
	}
	return r.Contains(price)
}
