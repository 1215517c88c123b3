package models

// DataRange is the bounding box of non-empty cells on a sheet.
type DataRange struct {
	// Ref is the range in A1 notation, e.g. "A5:AA812".
	Ref      string `json:"ref"`
	FirstRow int    `json:"first_row"`
	LastRow  int    `json:"last_row"`
	// Density is the share of non-empty cells inside the range.
	Density float64 `json:"density"`
}

// SheetData is the raw content of one sheet, used to author a CatalogSpec.
type SheetData struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	// Rows contains non-empty rows with raw cell values.
	Rows []CellRow `json:"rows,omitempty"`
	// Range is nil when the sheet is empty.
	Range *DataRange `json:"range,omitempty"`
	// SuggestedStartLine is the first row whose cells look like price data.
	SuggestedStartLine int `json:"suggested_start_line,omitempty"`
}
