// Package metrics exposes the import summary as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// Collector records per-catalog import outcomes.
type Collector struct {
	tiresImported   *prometheus.CounterVec
	rowsSkipped     *prometheus.CounterVec
	tiresUnresolved *prometheus.CounterVec
	softFailures    *prometheus.CounterVec
	catalogFailures *prometheus.CounterVec
	importDuration  *prometheus.HistogramVec
}

// New registers the collector's metrics on reg.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		// Tires handed to persistence, resolved or not
		tiresImported: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricelist_tires_imported_total",
				Help: "Number of tires imported per catalog",
			},
			[]string{"catalog"},
		),
		rowsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricelist_rows_skipped_total",
				Help: "Number of rows skipped for lack of a usable base price",
			},
			[]string{"catalog"},
		),
		tiresUnresolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricelist_tires_unresolved_total",
				Help: "Number of imported tires left without sell prices",
			},
			[]string{"catalog"},
		),
		softFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricelist_soft_failures_total",
				Help: "Number of recorded soft failures by kind",
			},
			[]string{"catalog", "kind"},
		),
		catalogFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricelist_catalog_failures_total",
				Help: "Number of catalog imports aborted on a structural problem",
			},
			[]string{"catalog"},
		),
		importDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricelist_catalog_import_seconds",
				Help:    "Catalog import and pricing latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"catalog"},
		),
	}
}

// Observe records one catalog report. A nil collector is a no-op.
func (c *Collector) Observe(r models.CatalogReport) {
	if c == nil {
		return
	}
	c.importDuration.WithLabelValues(r.Catalog).Observe(r.Duration.Seconds())
	if r.Failed() {
		c.catalogFailures.WithLabelValues(r.Catalog).Inc()
		return
	}
	c.tiresImported.WithLabelValues(r.Catalog).Add(float64(r.Imported))
	c.rowsSkipped.WithLabelValues(r.Catalog).Add(float64(r.Skipped))
	c.tiresUnresolved.WithLabelValues(r.Catalog).Add(float64(r.Unresolved))
	for _, f := range r.Failures {
		c.softFailures.WithLabelValues(r.Catalog, string(f.Kind)).Inc()
	}
}
