package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// BuildMetrics instruments ownership index builds. A nil *BuildMetrics is a
// valid no-op receiver so callers never need to guard the record path.
type BuildMetrics struct {
	filesScored     metric.Int64Counter
	linesAttributed metric.Int64Counter
	buildDuration   metric.Float64Histogram
}

// NewBuildMetrics registers the build instruments on the given meter.
func NewBuildMetrics(meter metric.Meter) (*BuildMetrics, error) {
	filesScored, err := meter.Int64Counter("ownership.files_scored",
		metric.WithDescription("Number of tracked files scored per build"))
	if err != nil {
		return nil, fmt.Errorf("create files_scored counter: %w", err)
	}

	linesAttributed, err := meter.Int64Counter("ownership.lines_attributed",
		metric.WithDescription("Number of blamed lines attributed per build"))
	if err != nil {
		return nil, fmt.Errorf("create lines_attributed counter: %w", err)
	}

	buildDuration, err := meter.Float64Histogram("ownership.build_duration_seconds",
		metric.WithDescription("Wall time of the bottom-up index build"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create build_duration histogram: %w", err)
	}

	return &BuildMetrics{
		filesScored:     filesScored,
		linesAttributed: linesAttributed,
		buildDuration:   buildDuration,
	}, nil
}

// RecordBuild records the counters for one completed build.
func (bm *BuildMetrics) RecordBuild(ctx context.Context, files, lines int64, elapsed time.Duration) {
	if bm == nil {
		return
	}

	bm.filesScored.Add(ctx, files)
	bm.linesAttributed.Add(ctx, lines)
	bm.buildDuration.Record(ctx, elapsed.Seconds())
}
