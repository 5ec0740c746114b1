package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "keycalc"

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template and status",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests being served",
		},
	)

	sessionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_session_requests_total",
			Help:      "Keypad session calls by action (open, press, get, close) and outcome",
		},
		[]string{"action", "outcome"},
	)
)

const sessionsRoute = "/api/v1/sessions"

// sessionAction возвращает действие над сессией клавиатуры для шаблона маршрута gin
// или "" для остальных маршрутов.
func sessionAction(method, route string) string {
	switch {
	case route == sessionsRoute && method == http.MethodPost:
		return "open"
	case route == sessionsRoute+"/:id/keys" && method == http.MethodPost:
		return "press"
	case route == sessionsRoute+"/:id" && method == http.MethodGet:
		return "get"
	case route == sessionsRoute+"/:id" && method == http.MethodDelete:
		return "close"
	}
	return ""
}

// outcome сворачивает HTTP-статус в класс ответа.
func outcome(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error"
	case status == http.StatusTooManyRequests:
		return "limited"
	case status >= http.StatusBadRequest:
		return "client_error"
	}
	return "ok"
}

// PrometheusMetrics считает запросы по шаблону маршрута и вызовы сессий клавиатуры.
// Запросы к /metrics и к несуществующим маршрутам в разрезе маршрутов не учитываются.
func PrometheusMetrics(c *gin.Context) {
	if c.Request.URL.Path == "/metrics" {
		c.Next()
		return
	}

	requestsInFlight.Inc()
	defer requestsInFlight.Dec()
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	method := strings.ToUpper(c.Request.Method)
	status := c.Writer.Status()

	requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	if action := sessionAction(method, route); action != "" {
		sessionRequests.WithLabelValues(action, outcome(status)).Inc()
	}
}
