package parser

import (
	"github.com/xuri/excelize/v2"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// RangeDetectionParams holds parameters for data range detection.
type RangeDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultRangeParams returns default data range detection parameters.
func DefaultRangeParams() RangeDetectionParams {
	return RangeDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// DetectDataRange returns the bounding box of non-empty cells, or nil when
// the sheet is too sparse to hold a price list.
func DetectDataRange(rows [][]string, params RangeDetectionParams) *models.DataRange {
	box, filled := scanCells(rows)
	if filled == 0 || filled < params.MinNonemptyCells {
		return nil
	}

	area := (box.lastRow - box.firstRow + 1) * (box.lastCol - box.firstCol + 1)
	density := float64(filled) / float64(area)
	if density < params.DensityMin {
		return nil
	}

	from, _ := excelize.CoordinatesToCellName(box.firstCol+1, box.firstRow+1)
	to, _ := excelize.CoordinatesToCellName(box.lastCol+1, box.lastRow+1)
	return &models.DataRange{
		Ref:      from + ":" + to,
		FirstRow: box.firstRow + 1,
		LastRow:  box.lastRow + 1,
		Density:  density,
	}
}

// LastPopulatedRow returns the 1-based number of the last row holding any
// non-blank cell, or 0 for an empty sheet.
func LastPopulatedRow(rows [][]string) int {
	for i := len(rows) - 1; i >= 0; i-- {
		for col := range rows[i] {
			if cellAt(rows[i], col) != "" {
				return i + 1
			}
		}
	}
	return 0
}

// SuggestStartLine returns the first 1-based row that has a usable price in
// priceCol, or 0 when none does.
func SuggestStartLine(rows [][]string, priceCol ColumnRef) int {
	if !priceCol.Present() {
		return 0
	}
	for rowIdx, row := range rows {
		v, _ := priceCol.Resolve(row)
		if price, ok := ParsePrice(v); ok && !price.IsZero() {
			return rowIdx + 1
		}
	}
	return 0
}

// cellBox is a zero-based inclusive cell rectangle.
type cellBox struct {
	firstRow, lastRow int
	firstCol, lastCol int
}

// scanCells returns the box around every non-blank cell and how many there are.
func scanCells(rows [][]string) (box cellBox, filled int) {
	for r, row := range rows {
		for c := range row {
			if cellAt(row, c) == "" {
				continue
			}
			if filled == 0 {
				box = cellBox{firstRow: r, lastRow: r, firstCol: c, lastCol: c}
			}
			filled++
			box.lastRow = r
			box.firstCol = min(box.firstCol, c)
			box.lastCol = max(box.lastCol, c)
		}
	}
	return box, filled
}
