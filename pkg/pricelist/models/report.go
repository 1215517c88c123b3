package models

import "time"

// FailureKind classifies a soft failure.
type FailureKind string

const (
	FailureMalformedDimension FailureKind = "malformed_dimension"
	FailureNoMatchingRule     FailureKind = "no_matching_rule"
	FailureAmbiguousRule      FailureKind = "ambiguous_rule"
)

// SoftFailure is a per-row or per-tire problem that was recorded and skipped.
type SoftFailure struct {
	Catalog string      `json:"catalog"`
	Row     int         `json:"row"`
	Kind    FailureKind `json:"kind"`
	Reason  string      `json:"reason"`
}

// CatalogReport is the operator summary of one catalog import.
type CatalogReport struct {
	Catalog    string        `json:"catalog"`
	RowsRead   int           `json:"rows_read"`
	Imported   int           `json:"imported"`
	Skipped    int           `json:"skipped"`
	Unresolved int           `json:"unresolved"`
	Failures   []SoftFailure `json:"failures,omitempty"`
	// Error is set when the catalog import aborted.
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Failed reports whether the catalog aborted on a structural problem.
func (r CatalogReport) Failed() bool {
	return r.Error != ""
}

// BatchReport collects the reports of one import run.
type BatchReport struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	DryRun     bool            `json:"dry_run"`
	Catalogs   []CatalogReport `json:"catalogs"`
}

// Totals sums imported, skipped and unresolved tires over every catalog.
func (b BatchReport) Totals() (imported, skipped, unresolved int) {
	for _, c := range b.Catalogs {
		imported += c.Imported
		skipped += c.Skipped
		unresolved += c.Unresolved
	}
	return imported, skipped, unresolved
}

// Failures flattens the soft failures of every catalog.
func (b BatchReport) Failures() []SoftFailure {
	var out []SoftFailure
	for _, c := range b.Catalogs {
		out = append(out, c.Failures...)
	}
	return out
}
