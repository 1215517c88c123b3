package pricelist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/pricing"
)

// Persister stores import results. ReplaceCatalog must swap a catalog's
// tires atomically.
type Persister interface {
	ReplaceCatalog(ctx context.Context, catalog string, tires []models.Tire) error
	SaveReport(ctx context.Context, report *models.BatchReport) error
}

// Run imports, prices and persists every catalog, up to opts.Workers at a
// time. A catalog that fails structurally is recorded in its report and
// does not stop its siblings. Run returns an error only when ctx is done or
// the batch report cannot be saved; the report is returned in both cases.
func Run(ctx context.Context, specs []models.CatalogSpec, src WorkbookSource, table *pricing.MarginTable, persister Persister, opts Options) (*models.BatchReport, error) {
	if table == nil {
		return nil, errors.New("margin table is required")
	}
	if persister == nil && !opts.DryRun {
		return nil, errors.New("persister is required unless dry run")
	}

	log := opts.logger()
	report := &models.BatchReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		DryRun:    opts.DryRun,
		Catalogs:  make([]models.CatalogReport, len(specs)),
	}
	log.Info("import started",
		zap.String("run_id", report.RunID),
		zap.Int("catalogs", len(specs)),
		zap.Int("workers", opts.workers()),
		zap.Bool("dry_run", opts.DryRun),
	)

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			report.Catalogs[i] = models.CatalogReport{Catalog: spec.Name, Error: err.Error()}
			continue
		}
		g.Go(func() error {
			report.Catalogs[i] = runCatalog(ctx, spec, src, table, persister, opts)
			return nil
		})
	}
	_ = g.Wait()
	report.FinishedAt = time.Now().UTC()

	imported, skipped, unresolved := report.Totals()
	log.Info("import finished",
		zap.String("run_id", report.RunID),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.Int("unresolved", unresolved),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if !opts.DryRun {
		if err := persister.SaveReport(ctx, report); err != nil {
			return report, fmt.Errorf("save report: %w", err)
		}
	}
	return report, nil
}

func runCatalog(ctx context.Context, spec models.CatalogSpec, src WorkbookSource, table *pricing.MarginTable, persister Persister, opts Options) (report models.CatalogReport) {
	start := time.Now()
	log := opts.logger().With(zap.String("catalog", spec.Name))
	report.Catalog = spec.Name

	defer func() {
		report.Duration = time.Since(start)
		opts.Metrics.Observe(report)
		if report.Failed() {
			log.Error("catalog import aborted", zap.String("error", report.Error))
			return
		}
		log.Info("catalog imported",
			zap.Int("rows", report.RowsRead),
			zap.Int("imported", report.Imported),
			zap.Int("skipped", report.Skipped),
			zap.Int("unresolved", report.Unresolved),
			zap.Int("failures", len(report.Failures)),
		)
	}()

	payload, err := src.Load(ctx, spec)
	if err != nil {
		report.Error = NewImportError(spec.Name, "load", err).Error()
		return report
	}
	spec.File = payload

	result, err := ImportCatalog(spec)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	tires, unresolved := PriceTires(table, result.Tires)
	for _, f := range unresolved {
		log.Warn("tire left unresolved", zap.Int("row", f.Row), zap.String("kind", string(f.Kind)), zap.String("reason", f.Reason))
	}

	report.RowsRead = result.RowsRead
	report.Skipped = result.Skipped
	report.Imported = len(tires)
	report.Unresolved = len(unresolved)
	report.Failures = append(result.Failures, unresolved...)

	if opts.DryRun {
		return report
	}
	if err := persister.ReplaceCatalog(ctx, spec.Name, tires); err != nil {
		report.Error = NewImportError(spec.Name, "persist", err).Error()
	}
	return report
}
