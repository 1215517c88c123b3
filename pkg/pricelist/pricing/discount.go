// Package pricing derives net costs from list prices and resolves garage and
// client sell prices through a size and price bucketed margin table.
package pricing

import "github.com/shopspring/decimal"

// MinorUnitPlaces is the currency precision every computed price is rounded to.
const MinorUnitPlaces = 2

var hundred = decimal.NewFromInt(100)

// Round rounds a price to the minor unit, half to even.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MinorUnitPlaces)
}

// NetCost applies the flat catalog discount to a list price:
// basePrice * (1 - discountPercentage/100), rounded to the minor unit.
func NetCost(basePrice decimal.Decimal, discountPercentage int) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(discountPercentage)).Div(hundred))
	return Round(basePrice.Mul(factor))
}

// applyMargin returns cost * (1 + percent/100), rounded to the minor unit.
func applyMargin(cost, percent decimal.Decimal) decimal.Decimal {
	return Round(cost.Mul(decimal.NewFromInt(1).Add(percent.Div(hundred))))
}
