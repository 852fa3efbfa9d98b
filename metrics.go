package protfeat

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordDetection is called after each detector run.
	// err is nil if the kind succeeded.
	RecordDetection(kind Kind, duration time.Duration, err error)

	// RecordAnalysis is called after each Analyze call with the kinds that
	// failed.
	RecordAnalysis(duration time.Duration, failed []Kind)

	// RecordScan is called after each batch scan. count is the number of
	// structures, failed the number with an error or a failed kind.
	RecordScan(count, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDetection(Kind, time.Duration, error) {}
func (NoopMetricsCollector) RecordAnalysis(time.Duration, []Kind)       {}
func (NoopMetricsCollector) RecordScan(int, int, time.Duration)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	DetectionCount      [numKinds]atomic.Int64
	DetectionErrors     [numKinds]atomic.Int64
	DetectionTotalNanos [numKinds]atomic.Int64
	AnalysisCount       atomic.Int64
	AnalysisFailed      atomic.Int64
	AnalysisTotalNanos  atomic.Int64
	ScanCount           atomic.Int64
	ScanItems           atomic.Int64
	ScanFailed          atomic.Int64
}

// RecordDetection implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDetection(kind Kind, duration time.Duration, err error) {
	if kind < 0 || int(kind) >= numKinds {
		return
	}
	b.DetectionCount[kind].Add(1)
	b.DetectionTotalNanos[kind].Add(duration.Nanoseconds())
	if err != nil {
		b.DetectionErrors[kind].Add(1)
	}
}

// RecordAnalysis implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAnalysis(duration time.Duration, failed []Kind) {
	b.AnalysisCount.Add(1)
	b.AnalysisTotalNanos.Add(duration.Nanoseconds())
	if len(failed) > 0 {
		b.AnalysisFailed.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(count, failed int, duration time.Duration) {
	b.ScanCount.Add(1)
	b.ScanItems.Add(int64(count))
	b.ScanFailed.Add(int64(failed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		Detections:     make(map[Kind]DetectionStats, numKinds),
		AnalysisCount:  b.AnalysisCount.Load(),
		AnalysisFailed: b.AnalysisFailed.Load(),
		ScanCount:      b.ScanCount.Load(),
		ScanItems:      b.ScanItems.Load(),
		ScanFailed:     b.ScanFailed.Load(),
	}
	if stats.AnalysisCount > 0 {
		stats.AnalysisAvgNanos = b.AnalysisTotalNanos.Load() / stats.AnalysisCount
	}
	for _, k := range Kinds() {
		d := DetectionStats{
			Count:  b.DetectionCount[k].Load(),
			Errors: b.DetectionErrors[k].Load(),
		}
		if d.Count > 0 {
			d.AvgNanos = b.DetectionTotalNanos[k].Load() / d.Count
		}
		stats.Detections[k] = d
	}
	return stats
}

// DetectionStats is a per-kind snapshot.
type DetectionStats struct {
	Count    int64
	Errors   int64
	AvgNanos int64
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Detections       map[Kind]DetectionStats
	AnalysisCount    int64
	AnalysisFailed   int64
	AnalysisAvgNanos int64
	ScanCount        int64
	ScanItems        int64
	ScanFailed       int64
}
