// Package pricelist imports manufacturer tire price lists into canonical
// tire records and prices them through a margin table.
package pricelist

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/metrics"
)

// Options configures a batch run.
type Options struct {
	// Workers bounds how many catalogs are imported concurrently.
	// Zero means one per CPU.
	Workers int
	// DryRun imports and prices without handing results to the persister.
	DryRun bool
	// Logger receives per-catalog progress. Nil discards logs.
	Logger *zap.Logger
	// Metrics records the per-catalog summary. Nil disables metrics.
	Metrics *metrics.Collector
}

// DefaultOptions returns default batch options.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.NumCPU(),
	}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
