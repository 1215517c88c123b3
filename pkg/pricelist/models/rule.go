package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountRule is one margin bucket: a diameter and a half-open net cost
// interval [FromPrice, ToPrice) mapped to garage and client margins.
type DiscountRule struct {
	Size         int             `json:"size"`
	FromPrice    decimal.Decimal `json:"from_price"`
	ToPrice      decimal.Decimal `json:"to_price"`
	MarginGarage decimal.Decimal `json:"margin_garage"`
	Margin       decimal.Decimal `json:"margin"`
}

// Contains reports whether price falls inside [FromPrice, ToPrice).
func (r DiscountRule) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.FromPrice) && price.LessThan(r.ToPrice)
}

func (r DiscountRule) String() string {
	return fmt.Sprintf("size %d [%s, %s) garage %s%% client %s%%",
		r.Size, r.FromPrice, r.ToPrice, r.MarginGarage, r.Margin)
}
