package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// ErrSkipRow signals a row without a usable base price. It marks headers,
// notes and the end of data, and is not a failure.
var ErrSkipRow = errors.New("row skipped")

// Field names a value read from a price-list row.
type Field string

const (
	FieldBrand                Field = "brand"
	FieldBasePrice            Field = "base_price"
	FieldReference            Field = "reference"
	FieldEAN                  Field = "ean"
	FieldDimension            Field = "dimension"
	FieldWidth                Field = "width"
	FieldAspectRatio          Field = "aspect_ratio"
	FieldDiameter             Field = "diameter"
	FieldLoadIndexSpeedRating Field = "load_index_speed_rating"
	FieldProfile              Field = "profile"
	FieldInfo1                Field = "info1"
	FieldInfo2                Field = "info2"
)

// Columns is the compiled column map of a CatalogSpec.
type Columns map[Field]ColumnRef

// CompileColumns parses every column reference of spec once.
func CompileColumns(spec models.CatalogSpec) (Columns, error) {
	refs := map[Field]string{
		FieldBasePrice:            spec.BasePriceColumn,
		FieldReference:            spec.ReferenceColumn,
		FieldEAN:                  spec.EANColumn,
		FieldDimension:            spec.DimensionColumn,
		FieldWidth:                spec.WidthColumn,
		FieldAspectRatio:          spec.AspectRatioColumn,
		FieldDiameter:             spec.DiameterColumn,
		FieldLoadIndexSpeedRating: spec.LoadIndexSpeedRatingColumn,
		FieldProfile:              spec.ProfilColumn,
		FieldInfo1:                spec.Info1Column,
		FieldInfo2:                spec.Info2Column,
	}
	if !spec.BrandFromName() {
		refs[FieldBrand] = spec.BrandColumn
	}

	cols := make(Columns, len(refs))
	for field, ref := range refs {
		col, err := ParseColumnRef(ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		if col.Present() {
			cols[field] = col
		}
	}
	if !cols[FieldBasePrice].Present() {
		return nil, fmt.Errorf("%s: column is required", FieldBasePrice)
	}
	return cols, nil
}

// RawFields is the field bag extracted from one row. A field missing from
// the bag has no column in the layout; a blank string means the cell was empty.
type RawFields struct {
	Row       int
	BasePrice decimal.Decimal
	values    map[Field]string
}

// Get returns a field value and whether the layout defines it.
func (f RawFields) Get(field Field) (string, bool) {
	v, ok := f.values[field]
	return v, ok
}

// Value returns a field value, blank when absent.
func (f RawFields) Value(field Field) string {
	return f.values[field]
}

// SizeCells returns the raw size cells for DecodeSize.
func (f RawFields) SizeCells() SizeCells {
	return SizeCells{
		Dimension:   f.Value(FieldDimension),
		Width:       f.Value(FieldWidth),
		AspectRatio: f.Value(FieldAspectRatio),
		Diameter:    f.Value(FieldDiameter),
	}
}

// ExtractRow reads one sheet row (rowNum is 1-based) through the compiled
// column map. It returns ErrSkipRow when the base price is blank,
// non-numeric or zero.
func ExtractRow(spec models.CatalogSpec, cols Columns, rowNum int, row []string) (RawFields, error) {
	fields := RawFields{Row: rowNum, values: make(map[Field]string, len(cols)+1)}

	for field, col := range cols {
		if v, ok := col.Resolve(row); ok {
			fields.values[field] = v
		}
	}

	price, ok := ParsePrice(fields.values[FieldBasePrice])
	if !ok || price.IsZero() {
		return RawFields{}, ErrSkipRow
	}
	fields.BasePrice = price

	if spec.BrandFromName() {
		fields.values[FieldBrand] = spec.Name
	}
	return fields, nil
}

// priceRe matches an amount with an optional currency code before or after it.
var priceRe = regexp.MustCompile(`^(?i:(?:CHF|EUR|USD|SFR|FR\.?|€|\$|£)\s*)?(-?[0-9][0-9'’ \x{00A0},.]*?)\s*(?i:(?:CHF|EUR|USD|SFR|FR\.?|€|\$|£|\.-))?$`)

// ParsePrice parses a list price cell. It accepts raw numbers ("89.5"),
// thousands separators ("1'250.00", "1,250.00", "1.250,50"), a decimal
// comma ("89,50") and a currency code ("CHF 89.50", "89.50 €").
func ParsePrice(raw string) (decimal.Decimal, bool) {
	m := priceRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return decimal.Zero, false
	}

	s := strings.Map(func(r rune) rune {
		switch r {
		case '\'', '’', ' ', '\u00a0':
			return -1
		}
		return r
	}, m[1])

	// with both marks present, the last one is the decimal separator
	switch dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ","); {
	case dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot > comma:
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
