package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "blogCPT/internal/middleware"

type httpMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

func initMetrics(meter metric.Meter) *httpMetrics {
	requestCount, _ := meter.Int64Counter("http.request.count",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)

	requestDuration, _ := meter.Float64Histogram("http.request.duration",
		metric.WithDescription("Request duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)

	requestErrors, _ := meter.Int64Counter("http.request.errors",
		metric.WithDescription("Total number of HTTP 5xx responses"),
		metric.WithUnit("{error}"),
	)

	return &httpMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware пишет счетчики и спаны запросов через глобальный
// провайдер OpenTelemetry. Без настроенного провайдера все вызовы no-op.
func MetricsMiddleware(next http.Handler) http.Handler {
	meter := otel.Meter(scopeName)
	metrics := initMetrics(meter)

	var tracer trace.Tracer = otel.Tracer(scopeName)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
			attribute.Int("http.status", sw.status),
		)

		metrics.requestCount.Add(ctx, 1, attrs)
		metrics.requestDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000.0, attrs)
		if sw.status >= http.StatusInternalServerError {
			metrics.requestErrors.Add(ctx, 1, attrs)
		}
	})
}
