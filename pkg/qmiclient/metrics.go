package qmiclient

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK            = "ok"
	resultError         = "error"
	resultTimeout       = "timeout"
	resultCanceled      = "canceled"
	resultBadRequest    = "bad_request"
	resultProtocolError = "protocol_error"
	resultClosed        = "closed"
	resultParseError    = "parse_error"
)

// Metrics holds the prometheus collectors of the runtime. A nil *Metrics
// records nothing.
type Metrics struct {
	Requests    *prometheus.CounterVec
	Latency     *prometheus.HistogramVec
	Aborts      *prometheus.CounterVec
	Indications *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when reg
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qmi",
			Name:      "requests_total",
			Help:      "QMI requests completed, labeled by service, message and result.",
		}, []string{"service", "message", "result"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qmi",
			Name:      "request_duration_seconds",
			Help:      "Time from request submission to reply or failure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "message"}),
		Aborts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qmi",
			Name:      "aborts_total",
			Help:      "Best-effort abort requests, labeled by service and result.",
		}, []string{"service", "result"}),
		Indications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qmi",
			Name:      "indications_total",
			Help:      "Indications dispatched, labeled by service, indication and result.",
		}, []string{"service", "indication", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Latency, m.Aborts, m.Indications)
	}
	return m
}

func (m *Metrics) observeRequest(service, message, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(service, message, result).Inc()
	if result != resultBadRequest {
		m.Latency.WithLabelValues(service, message).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) observeAbort(service, result string) {
	if m == nil {
		return
	}
	m.Aborts.WithLabelValues(service, result).Inc()
}

func (m *Metrics) observeIndication(service, indication, result string) {
	if m == nil {
		return
	}
	m.Indications.WithLabelValues(service, indication, result).Inc()
}

func resultOf(err error) string {
	var perr *ProtocolError
	switch {
	case errors.Is(err, ErrTimeout):
		return resultTimeout
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resultCanceled
	case errors.Is(err, ErrBadRequest):
		return resultBadRequest
	case errors.Is(err, ErrClosed):
		return resultClosed
	case errors.As(err, &perr):
		return resultProtocolError
	default:
		return resultError
	}
}
