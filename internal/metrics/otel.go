package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "matchday-companion"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx              context.Context
	meter            metric.Meter
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
	backendCalls     metric.Int64Counter
	backendErrors    metric.Int64Counter
	backendLatencyMs metric.Float64Histogram
	cacheFallbacks   metric.Int64Counter
	localSaves       metric.Int64Counter
	syncCycles       metric.Int64Counter
	syncErrors       metric.Int64Counter
	syncPromoted     metric.Int64Counter
	syncPending      metric.Int64Counter
	syncLatencyMs    metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("matchday-companion")
	ctx := context.Background()

	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}
	backendCalls, err := meter.Int64Counter("backend_calls_total")
	if err != nil {
		return nil, err
	}
	backendErrors, err := meter.Int64Counter("backend_errors_total")
	if err != nil {
		return nil, err
	}
	backendLatency, err := meter.Float64Histogram("backend_call_duration_ms")
	if err != nil {
		return nil, err
	}
	cacheFallbacks, err := meter.Int64Counter("cache_fallbacks_total")
	if err != nil {
		return nil, err
	}
	localSaves, err := meter.Int64Counter("local_saves_total")
	if err != nil {
		return nil, err
	}
	syncCycles, err := meter.Int64Counter("sync_cycles_total")
	if err != nil {
		return nil, err
	}
	syncErrors, err := meter.Int64Counter("sync_errors_total")
	if err != nil {
		return nil, err
	}
	syncPromoted, err := meter.Int64Counter("sync_promoted_total")
	if err != nil {
		return nil, err
	}
	syncPending, err := meter.Int64Counter("sync_pending_total")
	if err != nil {
		return nil, err
	}
	syncLatency, err := meter.Float64Histogram("sync_cycle_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:              ctx,
		meter:            meter,
		requests:         requests,
		requestLatencyMs: requestLatency,
		backendCalls:     backendCalls,
		backendErrors:    backendErrors,
		backendLatencyMs: backendLatency,
		cacheFallbacks:   cacheFallbacks,
		localSaves:       localSaves,
		syncCycles:       syncCycles,
		syncErrors:       syncErrors,
		syncPromoted:     syncPromoted,
		syncPending:      syncPending,
		syncLatencyMs:    syncLatency,
	}, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordBackendCall(operation string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrOperation, operation)}
	o.recordCounter(o.backendCalls, 1, attrs...)
	o.recordHistogram(o.backendLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.backendErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordCacheFallback(collection string) {
	if o == nil {
		return
	}
	o.recordCounter(o.cacheFallbacks, 1, attribute.String(AttrCollection, collection))
}

func (o *otelInstruments) recordLocalSave() {
	if o == nil {
		return
	}
	o.recordCounter(o.localSaves, 1)
}

func (o *otelInstruments) recordSyncCycle(duration time.Duration, synced, total int, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.syncCycles, 1)
	o.recordHistogram(o.syncLatencyMs, float64(duration.Milliseconds()))
	o.recordCounter(o.syncPromoted, int64(synced))
	if remaining := total - synced; remaining > 0 {
		o.recordCounter(o.syncPending, int64(remaining))
	}
	if err != nil {
		o.recordCounter(o.syncErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
