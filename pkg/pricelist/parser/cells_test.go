package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "Header2")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "AA2", 200.5)
	f.SetCellValue(sheetName, "A4", "Text")

	rows, err := ReadRows(f, sheetName)
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}

	cells := ExtractCells(rows, 0)
	if len(cells) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(cells))
	}

	if cells[0].R != 1 {
		t.Errorf("Expected row 1, got %d", cells[0].R)
	}
	if cells[0].C["A"] != "Header1" {
		t.Errorf("Expected 'Header1', got %v", cells[0].C["A"])
	}

	if cells[1].C["A"] != int64(100) {
		t.Errorf("Expected int64(100), got %v (type: %T)", cells[1].C["A"], cells[1].C["A"])
	}
	if cells[1].C["AA"] != 200.5 {
		t.Errorf("Expected 200.5, got %v", cells[1].C["AA"])
	}

	if cells[2].R != 4 {
		t.Errorf("Expected empty row 3 to be dropped, got row %d", cells[2].R)
	}

	if limited := ExtractCells(rows, 2); len(limited) != 2 {
		t.Errorf("Expected limit of 2 rows, got %d", len(limited))
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
