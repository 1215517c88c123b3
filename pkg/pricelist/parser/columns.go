// Package parser turns price-list sheet rows into raw field bags and tire dimensions.
package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnRef is a parsed column reference: nil for an absent field, one
// zero-based column index, or two for a "F:G" pair joined by a space.
type ColumnRef []int

// Present reports whether the reference points at any column.
func (c ColumnRef) Present() bool {
	return len(c) > 0
}

// ParseColumnRef parses "", "F" or "F:G". Letters are case-insensitive.
func ParseColumnRef(ref string) (ColumnRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return nil, fmt.Errorf("column reference %q: at most two columns", ref)
	}

	cols := make(ColumnRef, 0, len(parts))
	for _, part := range parts {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			return nil, fmt.Errorf("column reference %q: empty column", ref)
		}
		idx, err := excelize.ColumnNameToNumber(part)
		if err != nil {
			return nil, fmt.Errorf("column reference %q: %w", ref, err)
		}
		cols = append(cols, idx-1)
	}
	return cols, nil
}

// Resolve reads the referenced cells from row. The second return value is
// false when the reference is absent; a reference past the end of the row
// yields a present but blank value.
func (c ColumnRef) Resolve(row []string) (string, bool) {
	if !c.Present() {
		return "", false
	}
	values := make([]string, 0, len(c))
	for _, idx := range c {
		if v := cellAt(row, idx); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, " "), true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
