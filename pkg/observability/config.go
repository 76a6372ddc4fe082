// Package observability wires structured logging, tracing, and metrics for
// the gitowners CLI. Telemetry is a no-op unless an OTLP endpoint is
// configured, so the default invocation pays no export overhead.
package observability

import "log/slog"

const defaultShutdownTimeoutSec = 5

// Config holds observability settings for one process.
type Config struct {
	// ServiceName identifies this binary in telemetry and log records.
	ServiceName string

	// ServiceVersion is the build version attached to the otel resource.
	ServiceVersion string

	// Environment tags telemetry (e.g. "dev", "ci"); empty omits the tag.
	Environment string

	// OTLPEndpoint is the gRPC collector endpoint; empty disables export.
	OTLPEndpoint string

	// OTLPInsecure disables transport security for the exporter.
	OTLPInsecure bool

	// LogLevel is the minimum level emitted by the logger.
	LogLevel slog.Level

	// LogJSON selects the JSON handler instead of text.
	LogJSON bool

	// SampleRatio samples traces when positive; zero means always-on.
	SampleRatio float64

	// ShutdownTimeoutSec bounds the final telemetry flush.
	ShutdownTimeoutSec int
}
