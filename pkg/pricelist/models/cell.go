package models

// CellRow is one non-empty sheet row keyed by column letter.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column letter to cell value.
	C map[string]interface{} `json:"c"`
}
