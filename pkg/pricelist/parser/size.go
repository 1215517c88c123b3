package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// ErrMalformedDimension indicates the size cells could not be parsed as integers.
var ErrMalformedDimension = errors.New("malformed dimension")

// SizeCells holds the raw size cells of one row. Empty strings stand for
// absent or blank cells.
type SizeCells struct {
	Dimension   string
	Width       string
	AspectRatio string
	Diameter    string
}

// DecodeSize turns raw size cells into a Dimension according to format.
func DecodeSize(format models.SizeFormat, cells SizeCells) (models.Dimension, error) {
	switch format {
	case models.SizeFormatCombined:
		return decodeCombined(cells.Dimension)
	case models.SizeFormatSplitNoWidth:
		return decodeSplit(cells, false)
	case models.SizeFormatSplitFull:
		return decodeSplit(cells, true)
	default:
		return models.Dimension{}, fmt.Errorf("unknown size format %q", format)
	}
}

func isSizeSeparator(r rune) bool {
	switch r {
	case '/', '-', ' ':
		return true
	}
	return false
}

// decodeCombined parses "205/55R16", "225/45ZR17", "195R15 106/104R" or
// "205-55-16". When the cell has an R marker, the first number after it is
// the diameter, width and aspect ratio come from the numbers before it, and
// the rest of the cell (load index, speed rating, "C") is ignored. Cells
// without any R are read as plain number sequences.
func decodeCombined(raw string) (models.Dimension, error) {
	var dim models.Dimension
	malformed := fmt.Errorf("%w: %q", ErrMalformedDimension, raw)

	var nums []int
	if i := diameterMarker(raw); i >= 0 {
		front, err := sizeNumbers(raw[:i])
		if err != nil || len(front) == 0 || len(front) > 2 {
			return dim, malformed
		}
		rest := strings.FieldsFunc(raw[i+1:], isSizeSeparator)
		if len(rest) == 0 {
			return dim, malformed
		}
		diameter, err := strconv.Atoi(trimAlpha(rest[0]))
		if err != nil {
			return dim, malformed
		}
		nums = append(front, diameter)
	} else {
		if strings.ContainsAny(raw, "Rr") {
			return dim, malformed
		}
		all, err := sizeNumbers(raw)
		if err != nil || len(all) < 2 {
			return dim, malformed
		}
		nums = all[:min(len(all), 3)]
	}

	dim.Width = &nums[0]
	if len(nums) == 3 {
		dim.AspectRatio = &nums[1]
	}
	dim.Diameter = nums[len(nums)-1]
	return dim, nil
}

// diameterMarker returns the index of the R that precedes the diameter, or
// -1. The R must follow a number (optionally through a Z speed marker or
// spaces) and be followed by a digit.
func diameterMarker(raw string) int {
	for i := 0; i < len(raw); i++ {
		if raw[i] != 'R' && raw[i] != 'r' {
			continue
		}
		before := strings.TrimRight(raw[:i], " ")
		if before == "" {
			continue
		}
		if c := before[len(before)-1]; !isDigit(c) && c != 'Z' && c != 'z' {
			continue
		}
		after := strings.TrimLeft(raw[i+1:], " ")
		if after != "" && isDigit(after[0]) {
			return i
		}
	}
	return -1
}

// sizeNumbers splits s on size separators and parses every token, ignoring
// tokens made only of letters.
func sizeNumbers(s string) ([]int, error) {
	var nums []int
	for _, tok := range strings.FieldsFunc(s, isSizeSeparator) {
		tok = trimAlpha(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func decodeSplit(cells SizeCells, withWidth bool) (models.Dimension, error) {
	var dim models.Dimension

	diameter, ok, err := parseSizeInt(cells.Diameter)
	if err != nil {
		return dim, fmt.Errorf("%w: diameter %q", ErrMalformedDimension, cells.Diameter)
	}
	if !ok {
		return dim, fmt.Errorf("%w: missing diameter", ErrMalformedDimension)
	}
	dim.Diameter = diameter

	aspect, ok, err := parseSizeInt(cells.AspectRatio)
	if err != nil {
		return dim, fmt.Errorf("%w: aspect ratio %q", ErrMalformedDimension, cells.AspectRatio)
	}
	if ok {
		dim.AspectRatio = &aspect
	}

	if !withWidth {
		return dim, nil
	}
	width, ok, err := parseSizeInt(cells.Width)
	if err != nil {
		return dim, fmt.Errorf("%w: width %q", ErrMalformedDimension, cells.Width)
	}
	if !ok {
		return dim, fmt.Errorf("%w: missing width", ErrMalformedDimension)
	}
	dim.Width = &width
	return dim, nil
}

// parseSizeInt parses a single size cell such as "16", "R16" or "16C".
// Blank cells return ok=false.
func parseSizeInt(raw string) (int, bool, error) {
	s := trimAlpha(strings.TrimSpace(raw))
	if s == "" {
		if strings.TrimSpace(raw) == "" {
			return 0, false, nil
		}
		return 0, false, ErrMalformedDimension
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		// numeric cells may come back as "16" or "16.0"
		return int(f), true, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// trimAlpha strips leading and trailing letters: "55Z" -> "55", "ZR" -> "".
func trimAlpha(s string) string {
	return strings.TrimFunc(s, unicode.IsLetter)
}
