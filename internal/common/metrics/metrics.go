package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of generation requests handled per endpoint",
		},
		[]string{"endpoint", "status"},
	)

	RequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_failed_total",
			Help: "Total number of failed generation requests per endpoint",
		},
		[]string{"endpoint", "error_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gateway_request_duration_seconds",
			Help: "Duration of generation request processing in seconds",
		},
		[]string{"endpoint"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gateway_model_call_duration_seconds",
			Help: "Duration of upstream model calls in seconds",
		},
		[]string{"model"},
	)

	ModelRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_model_retries_total",
			Help: "Total number of rate-limit retries against the model API",
		},
		[]string{"model"},
	)
)
