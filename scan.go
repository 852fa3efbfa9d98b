package protfeat

import (
	"context"
	"time"

	"github.com/hupe1980/protfeat/structure"
)

// ScanResult is the outcome of one structure of a batch scan.
type ScanResult struct {
	// Index is the position of the structure in the input.
	Index  int
	Report *Report
	// Err is set when the structure could not be analyzed at all. Failed
	// kinds of an analyzed structure are reported in Report.Status.
	Err error
}

// Failed reports whether the structure errored or has a failed kind.
func (r ScanResult) Failed() bool {
	return r.Err != nil || (r.Report != nil && len(r.Report.Failed()) > 0)
}

// Scan analyzes structures on the worker pool and returns one result per input
// in input order. A failing structure never stops the scan. When ctx ends,
// structures not yet analyzed carry ctx.Err() and Scan returns it.
func (a *Analyzer) Scan(ctx context.Context, structures []*structure.Structure) ([]ScanResult, error) {
	start := time.Now()
	results := make([]ScanResult, len(structures))

	a.pool.Map(ctx, len(structures), func(i int) {
		results[i].Index = i
		results[i].Report, results[i].Err = a.Analyze(ctx, structures[i])
	}, func(i int, err error) {
		results[i] = ScanResult{Index: i, Err: err}
	})

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}

	a.opts.metricsCollector.RecordScan(len(structures), failed, time.Since(start))
	a.opts.logger.LogScan(ctx, len(structures), failed)

	return results, ctx.Err()
}

// Encode marshals the features of r with the configured codec.
func (a *Analyzer) Encode(r *Report, mode Mode) ([]byte, error) {
	return r.MarshalFeatures(a.opts.codec, mode)
}
