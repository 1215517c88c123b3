package pricelist

import (
	"errors"
	"fmt"
)

// ErrWorkbookUnreadable indicates the payload could not be opened as a spreadsheet.
var ErrWorkbookUnreadable = errors.New("workbook unreadable")

// ErrSheetIndexOutOfRange indicates the catalog's sheet index exceeds the workbook's sheets.
var ErrSheetIndexOutOfRange = errors.New("sheet index out of range")

// ImportError represents a structural problem that aborted one catalog.
type ImportError struct {
	Catalog string
	Stage   string // "load", "open", "sheet", "columns", "persist"
	Err     error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import of catalog %q failed (%s): %v", e.Catalog, e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(catalog, stage string, err error) *ImportError {
	return &ImportError{
		Catalog: catalog,
		Stage:   stage,
		Err:     err,
	}
}
