package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds job lifecycle instruments. A nil *Metrics is a valid no-op
// receiver so components stay testable without a meter provider.
type Metrics struct {
	meter metric.Meter

	OrdersPlaced     metric.Int64Counter
	OrdersCompleted  metric.Int64Counter
	OrdersFailed     metric.Int64Counter
	OrdersRejected   metric.Int64Counter
	PipelineDuration metric.Float64Histogram
	JobsActive       metric.Int64UpDownCounter
}

// NewMetrics creates and registers all instruments with a Prometheus exporter
// and returns the exposition handler.
func NewMetrics() (*Metrics, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter("ewhflex")
	m := &Metrics{meter: meter}

	m.OrdersPlaced, err = meter.Int64Counter(
		"ewh_orders_placed_total",
		metric.WithDescription("Total number of optimization orders accepted"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.OrdersCompleted, err = meter.Int64Counter(
		"ewh_orders_completed_total",
		metric.WithDescription("Total number of orders that reached complete"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.OrdersFailed, err = meter.Int64Counter(
		"ewh_orders_failed_total",
		metric.WithDescription("Total number of orders that reached failed"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.OrdersRejected, err = meter.Int64Counter(
		"ewh_orders_rejected_total",
		metric.WithDescription("Total number of submissions rejected before order creation"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.PipelineDuration, err = meter.Float64Histogram(
		"ewh_pipeline_duration_seconds",
		metric.WithDescription("Optimization pipeline duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600),
	)
	if err != nil {
		return nil, nil, err
	}

	m.JobsActive, err = meter.Int64UpDownCounter(
		"ewh_jobs_active",
		metric.WithDescription("Number of pipelines currently executing"),
	)
	if err != nil {
		return nil, nil, err
	}

	return m, promhttp.Handler(), nil
}

// RecordPlaced counts an accepted submission.
func (m *Metrics) RecordPlaced(ctx context.Context) {
	if m == nil {
		return
	}
	m.OrdersPlaced.Add(ctx, 1)
}

// RecordRejected counts a submission rejected before any order existed.
func (m *Metrics) RecordRejected(ctx context.Context) {
	if m == nil {
		return
	}
	m.OrdersRejected.Add(ctx, 1)
}

// JobStarted marks a pipeline as active.
func (m *Metrics) JobStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.JobsActive.Add(ctx, 1)
}

// JobFinished records the terminal outcome and duration of a pipeline.
func (m *Metrics) JobFinished(ctx context.Context, completed bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.JobsActive.Add(ctx, -1)
	m.PipelineDuration.Record(ctx, elapsed.Seconds())
	if completed {
		m.OrdersCompleted.Add(ctx, 1)
	} else {
		m.OrdersFailed.Add(ctx, 1)
	}
}
