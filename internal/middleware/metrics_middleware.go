package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Виды запросов консоли для меток метрик
const (
	KindPage     = "page"
	KindFragment = "fragment"
	KindStatic   = "static"
	KindService  = "service"
)

var (
	// ConsoleRequestsTotal - запросы к консоли по виду: страница, фрагмент, статика, служебные
	ConsoleRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_requests_total",
			Help: "Запросы к консоли по виду и маршруту",
		},
		[]string{"kind", "method", "route", "status"},
	)

	// ConsoleRenderDuration - время ответа консоли, включая вызовы API автопарка
	ConsoleRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_render_duration_seconds",
			Help:    "Время ответа консоли в секундах",
			Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"kind", "route"},
	)

	// ConsoleAbortedTotal - запросы, прерванные браузером до ответа (статус 499)
	ConsoleAbortedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_aborted_requests_total",
			Help: "Запросы, отмененные браузером",
		},
		[]string{"route"},
	)

	// FleetAPIRequestsTotal - общее количество запросов к API автопарка
	FleetAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_api_requests_total",
			Help: "Общее количество запросов к API автопарка",
		},
		[]string{"operation", "status"},
	)

	// FleetAPIRequestDuration - длительность запросов к API автопарка
	FleetAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fleet_api_request_duration_seconds",
			Help:    "Длительность запросов к API автопарка в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// RequestKind относит маршрут к виду запроса консоли
func RequestKind(route string) string {
	switch {
	case route == "":
		return KindPage
	case strings.HasPrefix(route, "/static"):
		return KindStatic
	case route == "/metrics" || route == "/health":
		return KindService
	case strings.HasSuffix(route, "/table") || strings.HasSuffix(route, "/details"):
		return KindFragment
	default:
		return KindPage
	}
}

// PrometheusMiddleware собирает метрики запросов к консоли с разбивкой по виду
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		kind := RequestKind(route)
		if route == "" {
			route = "not_found"
		}

		status := c.Writer.Status()
		if status == 499 {
			ConsoleAbortedTotal.WithLabelValues(route).Inc()
		}

		ConsoleRequestsTotal.WithLabelValues(kind, c.Request.Method, route, strconv.Itoa(status)).Inc()
		ConsoleRenderDuration.WithLabelValues(kind, route).Observe(time.Since(start).Seconds())
	}
}

// TrackFleetAPIRequest отслеживает запрос к API автопарка.
// status - код ответа или "error", если ответ не был получен.
func TrackFleetAPIRequest(operation string, status string, duration time.Duration) {
	FleetAPIRequestsTotal.WithLabelValues(operation, status).Inc()
	FleetAPIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
