// Package models defines data structures for price-list ingestion and pricing.
package models

// SizeFormat tells the size decoder how a manufacturer publishes tire dimensions.
type SizeFormat string

const (
	// SizeFormatCombined holds the whole dimension in one cell, e.g. "205/55R16".
	SizeFormatCombined SizeFormat = "combined"
	// SizeFormatSplitNoWidth spreads aspect ratio and diameter over columns; width is never read.
	SizeFormatSplitNoWidth SizeFormat = "split_no_width"
	// SizeFormatSplitFull spreads width, aspect ratio and diameter over columns.
	SizeFormatSplitFull SizeFormat = "split_full"
)

// SizeFormats lists every known format in declaration order.
var SizeFormats = []SizeFormat{SizeFormatCombined, SizeFormatSplitNoWidth, SizeFormatSplitFull}

// Valid reports whether f is one of the known formats.
func (f SizeFormat) Valid() bool {
	for _, known := range SizeFormats {
		if f == known {
			return true
		}
	}
	return false
}

// BrandFromCatalog is the brand column sentinel meaning "use the catalog name as brand".
// The uppercase column letter X can never be used for brand.
const BrandFromCatalog = "x"

// CatalogSpec describes how to read one manufacturer's price-list sheet.
type CatalogSpec struct {
	// Name is the display identity, unique within the active catalog set.
	Name string `toml:"name" json:"name" validate:"required"`
	// FileName is the workbook the storage collaborator loads into File.
	FileName string `toml:"file" json:"file" validate:"required"`
	// SheetIndex is the zero-based worksheet index.
	SheetIndex int `toml:"sheet_index" json:"sheet_index" validate:"gte=0"`

	BrandColumn                string `toml:"brand_column" json:"brand_column" validate:"brand_column"`
	BasePriceColumn            string `toml:"base_price_column" json:"base_price_column" validate:"required,column_ref"`
	ReferenceColumn            string `toml:"reference_column" json:"reference_column" validate:"column_ref"`
	EANColumn                  string `toml:"ean_column" json:"ean_column" validate:"column_ref"`
	DimensionColumn            string `toml:"dimension_column" json:"dimension_column" validate:"column_ref"`
	WidthColumn                string `toml:"width_column" json:"width_column" validate:"column_ref"`
	AspectRatioColumn          string `toml:"aspect_ratio_column" json:"aspect_ratio_column" validate:"column_ref"`
	DiameterColumn             string `toml:"diameter_column" json:"diameter_column" validate:"column_ref"`
	LoadIndexSpeedRatingColumn string `toml:"load_index_speed_rating_column" json:"load_index_speed_rating_column" validate:"column_ref"`
	ProfilColumn               string `toml:"profil_column" json:"profil_column" validate:"column_ref"`
	Info1Column                string `toml:"info1_column" json:"info1_column" validate:"column_ref"`
	Info2Column                string `toml:"info2_column" json:"info2_column" validate:"column_ref"`

	// StartLineNumber is the first 1-based row holding data.
	StartLineNumber int `toml:"start_line_number" json:"start_line_number" validate:"gte=1"`
	// DiscountPercentage is the flat manufacturer discount applied to every list price.
	DiscountPercentage int        `toml:"discount_percentage" json:"discount_percentage" validate:"gte=0,lte=100"`
	SizeFormat         SizeFormat `toml:"size_format" json:"size_format" validate:"required,size_format"`

	// File is the raw workbook payload. It is never serialized.
	File []byte `toml:"-" json:"-"`
}

// BrandFromName reports whether the brand comes from the catalog name.
func (c CatalogSpec) BrandFromName() bool {
	return c.BrandColumn == BrandFromCatalog
}
