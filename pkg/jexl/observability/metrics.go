package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records compile and evaluation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when
// disabled.
type MetricsRecorder interface {
	// RecordCompile records one compilation with its duration and
	// error status.
	RecordCompile(ctx context.Context, duration time.Duration, err error)

	// RecordEvaluation records one evaluation with its duration and
	// error status.
	RecordEvaluation(ctx context.Context, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compilations      metric.Int64Counter
	compileLatency    metric.Float64Histogram
	compileErrors     metric.Int64Counter
	evaluations       metric.Int64Counter
	evaluationLatency metric.Float64Histogram
	evaluationErrors  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the default OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("jexl")

	compilations, err := meter.Int64Counter("jexl.compilations",
		metric.WithDescription("Number of expression compilations"),
	)
	if err != nil {
		return nil, err
	}

	compileLatency, err := meter.Float64Histogram("jexl.compile.latency_ms",
		metric.WithDescription("Expression compile latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	compileErrors, err := meter.Int64Counter("jexl.compile.errors",
		metric.WithDescription("Number of failed compilations"),
	)
	if err != nil {
		return nil, err
	}

	evaluations, err := meter.Int64Counter("jexl.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evaluationLatency, err := meter.Float64Histogram("jexl.evaluation.latency_ms",
		metric.WithDescription("Expression evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evaluationErrors, err := meter.Int64Counter("jexl.evaluation.errors",
		metric.WithDescription("Number of failed evaluations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compilations:      compilations,
		compileLatency:    compileLatency,
		compileErrors:     compileErrors,
		evaluations:       evaluations,
		evaluationLatency: evaluationLatency,
		evaluationErrors:  evaluationErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the
// provider before evaluating:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordCompile implements MetricsRecorder.
func (m *otelMetrics) RecordCompile(ctx context.Context, duration time.Duration, err error) {
	m.compilations.Add(ctx, 1)
	m.compileLatency.Record(ctx, float64(duration.Microseconds())/1000)
	if err != nil {
		m.compileErrors.Add(ctx, 1)
	}
}

// RecordEvaluation implements MetricsRecorder.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, duration time.Duration, err error) {
	m.evaluations.Add(ctx, 1)
	m.evaluationLatency.Record(ctx, float64(duration.Microseconds())/1000)
	if err != nil {
		m.evaluationErrors.Add(ctx, 1)
	}
}
