package parser

import (
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// ReadRows returns every row of a sheet with raw (unformatted) cell values,
// so that numeric price cells are not rendered through their number format.
func ReadRows(f *excelize.File, sheetName string) ([][]string, error) {
	return f.GetRows(sheetName, excelize.Options{RawCellValue: true})
}

// ExtractCells converts sheet rows into CellRows keyed by column letter.
// Empty rows are dropped; at most limit rows are kept when limit > 0.
func ExtractCells(rows [][]string, limit int) []models.CellRow {
	var result []models.CellRow
	for rowIdx, row := range rows {
		if limit > 0 && len(result) >= limit {
			break
		}
		rowNum := rowIdx + 1 // 1-based row index
		cellMap := make(map[string]interface{})

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			colName, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				continue
			}
			cellMap[colName] = parseValue(cellValue)
		}

		if len(cellMap) > 0 {
			result = append(result, models.CellRow{R: rowNum, C: cellMap})
		}
	}
	return result
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
