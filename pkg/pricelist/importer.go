package pricelist

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/parser"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/pricing"
)

// ImportResult is the outcome of importing one catalog sheet.
type ImportResult struct {
	Catalog string
	// Tires is deduplicated by natural key, in order of first appearance.
	Tires    []models.Tire
	Failures []models.SoftFailure
	// RowsRead counts rows from the start line to the last populated row.
	RowsRead int
	Skipped  int
}

// ImportCatalog reads spec.File and returns the catalog's tires with net
// costs computed. Only an unreadable workbook, a bad sheet index or an
// invalid layout abort the import; row problems are collected as failures.
func ImportCatalog(spec models.CatalogSpec) (*ImportResult, error) {
	if !spec.SizeFormat.Valid() {
		return nil, NewImportError(spec.Name, "columns", fmt.Errorf("unknown size format %q", spec.SizeFormat))
	}
	cols, err := parser.CompileColumns(spec)
	if err != nil {
		return nil, NewImportError(spec.Name, "columns", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(spec.File))
	if err != nil {
		return nil, NewImportError(spec.Name, "open", fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err))
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if spec.SheetIndex < 0 || spec.SheetIndex >= len(sheetList) {
		return nil, NewImportError(spec.Name, "sheet",
			fmt.Errorf("%w: index %d, workbook has %d sheets", ErrSheetIndexOutOfRange, spec.SheetIndex, len(sheetList)))
	}

	rows, err := parser.ReadRows(f, sheetList[spec.SheetIndex])
	if err != nil {
		return nil, NewImportError(spec.Name, "sheet", fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err))
	}

	result := &ImportResult{Catalog: spec.Name}
	index := make(map[string]int)
	last := parser.LastPopulatedRow(rows)

	for rowNum := max(spec.StartLineNumber, 1); rowNum <= last; rowNum++ {
		result.RowsRead++

		fields, err := parser.ExtractRow(spec, cols, rowNum, rows[rowNum-1])
		if errors.Is(err, parser.ErrSkipRow) {
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, NewImportError(spec.Name, "sheet", err)
		}

		dim, err := parser.DecodeSize(spec.SizeFormat, fields.SizeCells())
		if err != nil {
			result.Failures = append(result.Failures, models.SoftFailure{
				Catalog: spec.Name,
				Row:     rowNum,
				Kind:    models.FailureMalformedDimension,
				Reason:  err.Error(),
			})
			continue
		}

		tire := newTire(spec, fields, dim)
		key := tire.Key()
		if i, ok := index[key]; ok {
			// later rows correct earlier ones
			result.Tires[i] = tire
			continue
		}
		index[key] = len(result.Tires)
		result.Tires = append(result.Tires, tire)
	}

	return result, nil
}

func newTire(spec models.CatalogSpec, fields parser.RawFields, dim models.Dimension) models.Tire {
	return models.Tire{
		CatalogName:          spec.Name,
		Row:                  fields.Row,
		Brand:                fields.Value(parser.FieldBrand),
		Reference:            fields.Value(parser.FieldReference),
		EAN:                  fields.Value(parser.FieldEAN),
		Dimension:            dim,
		LoadIndexSpeedRating: fields.Value(parser.FieldLoadIndexSpeedRating),
		Profile:              fields.Value(parser.FieldProfile),
		Info1:                fields.Value(parser.FieldInfo1),
		Info2:                fields.Value(parser.FieldInfo2),
		BasePrice:            fields.BasePrice,
		NetCost:              pricing.NetCost(fields.BasePrice, spec.DiscountPercentage),
	}
}

// PriceTires resolves sell prices for every tire. Tires that cannot be
// priced are kept unresolved and reported as soft failures.
func PriceTires(table *pricing.MarginTable, tires []models.Tire) ([]models.Tire, []models.SoftFailure) {
	priced := make([]models.Tire, 0, len(tires))
	var failures []models.SoftFailure

	for _, tire := range tires {
		resolved, err := table.Resolve(tire)
		if err != nil {
			kind := models.FailureNoMatchingRule
			if errors.Is(err, pricing.ErrAmbiguousRule) {
				kind = models.FailureAmbiguousRule
			}
			failures = append(failures, models.SoftFailure{
				Catalog: tire.CatalogName,
				Row:     tire.Row,
				Kind:    kind,
				Reason:  err.Error(),
			})
		}
		priced = append(priced, resolved)
	}
	return priced, failures
}
