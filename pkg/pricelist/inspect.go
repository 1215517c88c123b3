package pricelist

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/parser"
)

// InspectOptions configures Inspect.
type InspectOptions struct {
	SheetIndex int
	// Limit caps the number of rows returned; 0 returns all of them.
	Limit int
	// PriceColumn, when set, is used to suggest a start line.
	PriceColumn string
}

// Inspect returns the raw content of one sheet of a workbook, its data range
// and a suggested start line. It helps an operator author a CatalogSpec for
// a new manufacturer layout.
func Inspect(payload []byte, bookName string, opts InspectOptions) (*models.WorkbookData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if opts.SheetIndex < 0 || opts.SheetIndex >= len(sheetList) {
		return nil, fmt.Errorf("%w: index %d, workbook has %d sheets", ErrSheetIndexOutOfRange, opts.SheetIndex, len(sheetList))
	}
	sheetName := sheetList[opts.SheetIndex]

	rows, err := parser.ReadRows(f, sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}

	sheet := models.SheetData{
		Index: opts.SheetIndex,
		Name:  sheetName,
		Rows:  parser.ExtractCells(rows, opts.Limit),
		Range: parser.DetectDataRange(rows, parser.DefaultRangeParams()),
	}
	if opts.PriceColumn != "" {
		col, err := parser.ParseColumnRef(opts.PriceColumn)
		if err != nil {
			return nil, err
		}
		sheet.SuggestedStartLine = parser.SuggestStartLine(rows, col)
	}

	return &models.WorkbookData{
		BookName:   bookName,
		SheetNames: sheetList,
		Sheet:      sheet,
	}, nil
}
