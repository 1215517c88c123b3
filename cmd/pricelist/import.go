package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kikipneus/pricelist-go/pkg/pricelist"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/config"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/metrics"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/output"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/store"
)

var (
	dryRun      bool
	workers     int
	dbPath      string
	reportPath  string
	metricsFile string
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [catalog...]",
		Short: "Import, price and store catalogs (all of them by default)",
		RunE:  runImport,
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Import and price without writing to the database")
	cmd.Flags().IntVar(&workers, "workers", 0, "Catalogs imported concurrently (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the JSON batch report to this file")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	specs, err := config.LoadCatalogs(cfg.Data.CatalogsFile)
	if err != nil {
		return err
	}
	if specs, err = selectCatalogs(specs, args); err != nil {
		return err
	}
	table, err := loadMarginTable(cfg)
	if err != nil {
		return err
	}

	opts := pricelist.Options{
		Workers: cfg.Import.Workers,
		DryRun:  cfg.Import.DryRun || dryRun,
		Logger:  logger,
	}
	if workers > 0 {
		opts.Workers = workers
	}

	reg := prometheus.NewRegistry()
	opts.Metrics = metrics.New(reg)

	var persister pricelist.Persister
	if !opts.DryRun {
		path := cfg.Store.Path
		if dbPath != "" {
			path = dbPath
		}
		st, err := store.Open(path)
		if err != nil {
			return err
		}
		defer st.Close()
		persister = st
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, runErr := pricelist.Run(ctx, specs, pricelist.NewDirSource(cfg.Data.WorkbookDir), table, persister, opts)
	if report != nil {
		if err := output.WriteSummary(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if err := writeReport(report); err != nil {
			return err
		}
	}
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			logger.Error("failed to write metrics", zap.String("file", metricsFile), zap.Error(err))
		}
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return fmt.Errorf("import interrupted: %w", runErr)
		}
		return runErr
	}

	for _, c := range report.Catalogs {
		if c.Failed() {
			return fmt.Errorf("%d catalog(s) failed, see report", countFailed(report))
		}
	}
	return nil
}

func selectCatalogs(specs []models.CatalogSpec, names []string) ([]models.CatalogSpec, error) {
	if len(names) == 0 {
		return specs, nil
	}
	byName := make(map[string]models.CatalogSpec, len(specs))
	for _, s := range specs {
		byName[s.Name] = s
	}
	selected := make([]models.CatalogSpec, 0, len(names))
	for _, name := range names {
		spec, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown catalog %q", name)
		}
		selected = append(selected, spec)
	}
	return selected, nil
}

func writeReport(report *models.BatchReport) error {
	if reportPath == "" {
		return nil
	}
	data, err := output.ToJSON(report, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(reportPath, data)
}

func countFailed(report *models.BatchReport) int {
	n := 0
	for _, c := range report.Catalogs {
		if c.Failed() {
			n++
		}
	}
	return n
}
