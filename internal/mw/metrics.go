package mw

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/3xpluto/echo-upstream/internal/httpx"
)

const requestsMetric = "echo_http_requests_total"

type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Delay    prometheus.Histogram

	gatherer prometheus.Gatherer
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: requestsMetric,
			Help: "Total HTTP requests handled by the echo server",
		}, []string{"method", "code"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "echo_http_request_duration_seconds",
			Help:    "HTTP request latency including the simulated delay",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		Delay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "echo_simulated_delay_seconds",
			Help:    "Artificial latency applied before handling",
			Buckets: prometheus.LinearBuckets(0.01, 0.01, 10),
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.Requests, m.Latency, m.Delay)
	return m
}

// Instrument counts requests by method and status. Requests abandoned before
// a status was written are counted under code "none".
func Instrument(m *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &httpx.StatusWriter{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(sw, r)
		code := "none"
		if sw.Status != 0 {
			code = strconv.Itoa(sw.Status)
		}
		m.Requests.WithLabelValues(r.Method, code).Inc()
		m.Latency.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// Summary totals the request counter by status code.
func (m *Metrics) Summary() (map[string]int, error) {
	families, err := m.gatherer.Gather()
	if err != nil {
		return nil, err
	}
	out := map[string]int{}
	for _, mf := range families {
		if mf.GetName() != requestsMetric || mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, metric := range mf.GetMetric() {
			out[labelValue(metric, "code")] += int(metric.GetCounter().GetValue())
		}
	}
	return out, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
