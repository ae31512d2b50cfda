package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests that matched no route, keeping arbitrary URLs out of the label set.
const unmatchedRoute = "unmatched"

// unrecordedRoutes are polled by orchestrators and would drown out admin traffic.
var unrecordedRoutes = map[string]struct{}{
	"/health": {},
	"/ready":  {},
}

type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

func newHTTPMetrics(meterProvider metric.MeterProvider, namespace string) (*httpMetrics, error) {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of admin API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("Admin API request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	return &httpMetrics{requestCounter: requestCounter, durationHisto: durationHisto}, nil
}

// HTTPMetricsMiddleware records request counts and durations labelled with method,
// route pattern and status code. Health and readiness checks are not recorded.
// When the instruments cannot be created the middleware only passes requests through.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	m, err := newHTTPMetrics(meterProvider, namespace)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeLabel(c.FullPath())
		if _, skip := unrecordedRoutes[route]; skip {
			return
		}

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		m.requestCounter.Add(c.Request.Context(), 1, attrs)
		m.durationHisto.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}

// routeLabel returns the matched route pattern, e.g. /v1/secrets/:name, so secret names
// never become label values.
func routeLabel(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}
