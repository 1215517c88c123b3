package pricelist

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// buildWorkbook writes each sheet's rows starting at A1 and returns the
// xlsx payload. The first sheet reuses the default "Sheet1".
func buildWorkbook(t *testing.T, sheets ...[][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, rows := range sheets {
		name := "Sheet1"
		if i > 0 {
			name = "Sheet" + string(rune('1'+i))
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// pirelliRows is a combined-format price list: reference A, size C, price D,
// EAN F, start line 2.
func pirelliRows() [][]interface{} {
	return [][]interface{}{
		{"Code", "Description", "Size", "Price", "", "EAN"},
		{"P1", "Cinturato P7", "205/55R16", 200, "", "8019227000001"},
		{"P2", "P Zero", "225/45ZR17", 300, "", "8019227000002"},
		{"P3", "Cinturato P1", "195/65R15", "", "", ""},
		{"P4", "Scorpion", "XL", 150, "", "8019227000004"},
		{"P1B", "Cinturato P7", "205/55R16", 210, "", "8019227000001"},
		{"Prices in CHF excl. VAT"},
	}
}

func pirelliSpec(payload []byte) models.CatalogSpec {
	return models.CatalogSpec{
		Name:               "Pirelli",
		FileName:           "pirelli.xlsx",
		BrandColumn:        "x",
		BasePriceColumn:    "D",
		ReferenceColumn:    "A",
		EANColumn:          "F",
		DimensionColumn:    "C",
		Info1Column:        "B",
		StartLineNumber:    2,
		DiscountPercentage: 55,
		SizeFormat:         models.SizeFormatCombined,
		File:               payload,
	}
}
