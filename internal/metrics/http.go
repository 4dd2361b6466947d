package metrics

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics tracks the golden signals of the REST surface.
type HTTPMetrics struct {
	requestDuration metric.Float64Histogram
	requestsTotal   metric.Int64Counter
	errorsTotal     metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	hm := &HTTPMetrics{}

	var err error

	hm.requestDuration, err = meter.Float64Histogram(
		"http.server.request_duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1,
			0.25, 0.5, 1.0, 2.5, 5.0, 10.0,
		),
	)
	if err != nil {
		return nil, err
	}

	hm.requestsTotal, err = meter.Int64Counter(
		"http.server.requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	hm.errorsTotal, err = meter.Int64Counter(
		"http.server.errors_total",
		metric.WithDescription("Total number of HTTP responses with a 5xx status"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	hm.activeRequests, err = meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return hm, nil
}

func (hm *HTTPMetrics) StartRequest(ctx context.Context, method, route string) {
	if hm == nil || hm.activeRequests == nil {
		return
	}
	hm.activeRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http_method", method),
		attribute.String("http_route", route),
	))
}

func (hm *HTTPMetrics) EndRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if hm == nil || hm.requestDuration == nil {
		return
	}

	hm.activeRequests.Add(ctx, -1, metric.WithAttributes(
		attribute.String("http_method", method),
		attribute.String("http_route", route),
	))

	attrs := metric.WithAttributes(
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.String("http_status", strconv.Itoa(status)),
	)
	hm.requestDuration.Record(ctx, duration.Seconds(), attrs)
	hm.requestsTotal.Add(ctx, 1, attrs)
	if status >= 500 {
		hm.errorsTotal.Add(ctx, 1, attrs)
	}
}
