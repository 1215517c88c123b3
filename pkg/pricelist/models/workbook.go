package models

// WorkbookData lists the sheets of an inspected workbook.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists every sheet in index order.
	SheetNames []string  `json:"sheet_names"`
	Sheet      SheetData `json:"sheet"`
}
