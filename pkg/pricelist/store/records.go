package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// TireRecord is the persisted form of a priced tire.
type TireRecord struct {
	ID      uint   `gorm:"primaryKey"`
	Catalog string `gorm:"size:128;index;not null"`
	Row     int    `gorm:"column:source_row"`

	Brand     string `gorm:"size:128"`
	Reference string `gorm:"size:128"`
	EAN       string `gorm:"size:32;index"`

	Width       *int
	AspectRatio *int
	Diameter    int `gorm:"index"`

	LoadIndexSpeedRating string `gorm:"size:32"`
	Profile              string `gorm:"size:128"`
	Info1                string `gorm:"size:255"`
	Info2                string `gorm:"size:255"`

	BasePrice   decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	NetCost     decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	GaragePrice decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	ClientPrice decimal.NullDecimal `gorm:"type:decimal(12,2)"`

	ImportedAt time.Time
}

func (TireRecord) TableName() string {
	return "tires"
}

func newTireRecord(t models.Tire, importedAt time.Time) TireRecord {
	return TireRecord{
		Catalog:              t.CatalogName,
		Row:                  t.Row,
		Brand:                t.Brand,
		Reference:            t.Reference,
		EAN:                  t.EAN,
		Width:                t.Width,
		AspectRatio:          t.AspectRatio,
		Diameter:             t.Diameter,
		LoadIndexSpeedRating: t.LoadIndexSpeedRating,
		Profile:              t.Profile,
		Info1:                t.Info1,
		Info2:                t.Info2,
		BasePrice:            t.BasePrice,
		NetCost:              t.NetCost,
		GaragePrice:          t.GaragePrice,
		ClientPrice:          t.ClientPrice,
		ImportedAt:           importedAt,
	}
}

// Tire converts the record back to the domain model.
func (r TireRecord) Tire() models.Tire {
	return models.Tire{
		CatalogName: r.Catalog,
		Row:         r.Row,
		Brand:       r.Brand,
		Reference:   r.Reference,
		EAN:         r.EAN,
		Dimension: models.Dimension{
			Width:       r.Width,
			AspectRatio: r.AspectRatio,
			Diameter:    r.Diameter,
		},
		LoadIndexSpeedRating: r.LoadIndexSpeedRating,
		Profile:              r.Profile,
		Info1:                r.Info1,
		Info2:                r.Info2,
		BasePrice:            r.BasePrice,
		NetCost:              r.NetCost,
		GaragePrice:          r.GaragePrice,
		ClientPrice:          r.ClientPrice,
	}
}

// ImportRunRecord is the persisted summary of one batch run.
type ImportRunRecord struct {
	ID         string `gorm:"primaryKey;size:36"`
	StartedAt  time.Time
	FinishedAt time.Time
	Imported   int
	Skipped    int
	Unresolved int

	Catalogs []CatalogRunRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Failures []FailureRecord    `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (ImportRunRecord) TableName() string {
	return "import_runs"
}

// CatalogRunRecord is one catalog's outcome within a run.
type CatalogRunRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"size:36;index;not null"`
	Catalog    string `gorm:"size:128"`
	RowsRead   int
	Imported   int
	Skipped    int
	Unresolved int
	Error      string `gorm:"type:text"`
	DurationMS int64
}

func (CatalogRunRecord) TableName() string {
	return "import_run_catalogs"
}

// FailureRecord is one soft failure recorded during a run.
type FailureRecord struct {
	ID      uint   `gorm:"primaryKey"`
	RunID   string `gorm:"size:36;index;not null"`
	Catalog string `gorm:"size:128;index"`
	Row     int    `gorm:"column:source_row"`
	Kind    string `gorm:"size:32"`
	Reason  string `gorm:"type:text"`
}

func (FailureRecord) TableName() string {
	return "import_failures"
}

func newImportRunRecord(report *models.BatchReport) ImportRunRecord {
	imported, skipped, unresolved := report.Totals()
	run := ImportRunRecord{
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Imported:   imported,
		Skipped:    skipped,
		Unresolved: unresolved,
	}
	for _, c := range report.Catalogs {
		run.Catalogs = append(run.Catalogs, CatalogRunRecord{
			RunID:      report.RunID,
			Catalog:    c.Catalog,
			RowsRead:   c.RowsRead,
			Imported:   c.Imported,
			Skipped:    c.Skipped,
			Unresolved: c.Unresolved,
			Error:      c.Error,
			DurationMS: c.Duration.Milliseconds(),
		})
	}
	for _, f := range report.Failures() {
		run.Failures = append(run.Failures, FailureRecord{
			RunID:   report.RunID,
			Catalog: f.Catalog,
			Row:     f.Row,
			Kind:    string(f.Kind),
			Reason:  f.Reason,
		})
	}
	return run
}
