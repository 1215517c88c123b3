package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Dimension is the physical tire size triple. Width and AspectRatio are nil
// when the source layout does not publish them.
type Dimension struct {
	Width       *int `json:"width,omitempty"`
	AspectRatio *int `json:"aspect_ratio,omitempty"`
	Diameter    int  `json:"diameter"`
}

// String renders the dimension the way it is printed on a sidewall:
// "205/55R16", "195R15" without aspect ratio, "R16" without width.
func (d Dimension) String() string {
	var b strings.Builder
	if d.Width != nil {
		b.WriteString(strconv.Itoa(*d.Width))
		if d.AspectRatio != nil {
			b.WriteByte('/')
		}
	}
	if d.AspectRatio != nil {
		b.WriteString(strconv.Itoa(*d.AspectRatio))
	}
	b.WriteByte('R')
	b.WriteString(strconv.Itoa(d.Diameter))
	return b.String()
}

// Tire is the canonical product record produced from one price-list row.
type Tire struct {
	CatalogName string `json:"catalog_name"`
	// Row is the 1-based sheet row the tire was read from.
	Row int `json:"row"`

	Brand     string `json:"brand"`
	Reference string `json:"reference,omitempty"`
	EAN       string `json:"ean,omitempty"`

	Dimension

	LoadIndexSpeedRating string `json:"load_index_speed_rating,omitempty"`
	Profile              string `json:"profile,omitempty"`
	Info1                string `json:"info1,omitempty"`
	Info2                string `json:"info2,omitempty"`

	BasePrice decimal.Decimal `json:"base_price"`
	NetCost   decimal.Decimal `json:"net_cost"`

	GaragePrice decimal.NullDecimal `json:"garage_price"`
	ClientPrice decimal.NullDecimal `json:"client_price"`
}

// Key returns the natural key used for deduplication: the EAN when present,
// else the manufacturer reference, else dimension, load index and profile.
func (t Tire) Key() string {
	if ean := strings.TrimSpace(t.EAN); ean != "" {
		return "ean:" + ean
	}
	if ref := strings.TrimSpace(t.Reference); ref != "" {
		return "ref:" + ref
	}
	return "dim:" + t.Dimension.String() + "|" + t.LoadIndexSpeedRating + "|" + t.Profile
}

// Resolved reports whether both sell prices have been computed.
func (t Tire) Resolved() bool {
	return t.GaragePrice.Valid && t.ClientPrice.Valid
}
