package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// Quote is the outcome of one price resolution.
type Quote struct {
	Rule   models.DiscountRule
	Garage decimal.Decimal
	Client decimal.Decimal
}

// QuotePrice looks up the rule for a net cost on a given diameter and
// applies its margins.
func (t *MarginTable) QuotePrice(diameter int, netCost decimal.Decimal) (Quote, error) {
	rule, err := t.Lookup(diameter, netCost)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Rule:   rule,
		Garage: applyMargin(netCost, rule.MarginGarage),
		Client: applyMargin(netCost, rule.Margin),
	}, nil
}

// ResolvePrice returns the garage and client prices for a net cost on a
// given diameter. It is usable outside the import path for ad-hoc repricing.
func (t *MarginTable) ResolvePrice(diameter int, netCost decimal.Decimal) (garage, client decimal.Decimal, err error) {
	q, err := t.QuotePrice(diameter, netCost)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return q.Garage, q.Client, nil
}

// Resolve returns a copy of tire with garage and client prices set. On
// error the returned tire is unresolved: both prices are cleared.
func (t *MarginTable) Resolve(tire models.Tire) (models.Tire, error) {
	garage, client, err := t.ResolvePrice(tire.Diameter, tire.NetCost)
	if err != nil {
		tire.GaragePrice = decimal.NullDecimal{}
		tire.ClientPrice = decimal.NullDecimal{}
		return tire, err
	}
	tire.GaragePrice = decimal.NewNullDecimal(garage)
	tire.ClientPrice = decimal.NewNullDecimal(client)
	return tire, nil
}
