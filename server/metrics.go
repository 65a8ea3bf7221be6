package server

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests in flight",
		},
	)
	priceRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_refresh_total",
			Help: "Price refresh runs by outcome",
		},
		[]string{"outcome"},
	)
	alertsTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alerts_triggered_total",
			Help: "Price alerts fired since start",
		},
	)
	websocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients",
			Help: "Connected websocket clients",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		httpRequestsInFlight,
		priceRefreshTotal,
		alertsTriggeredTotal,
		websocketClients,
	)
}
