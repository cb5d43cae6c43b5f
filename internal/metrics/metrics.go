package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts outgoing API calls by route group and outcome and tracks
// how many are in flight. It satisfies the gateway's Observer hook.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	inFlight prometheus.Gauge
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placement_client_requests_total",
			Help: "Outgoing placement API requests by route group and outcome.",
		},
		[]string{"group", "outcome"},
	)
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "placement_client_in_flight",
		Help: "Outgoing placement API requests currently in flight.",
	})
	registry.MustRegister(requests, inFlight)

	return &Recorder{registry: registry, requests: requests, inFlight: inFlight}
}

// Started marks one request issued; the matching Observe settles it.
func (r *Recorder) Started(group string) {
	r.inFlight.Inc()
}

func (r *Recorder) Observe(group, outcome string) {
	r.inFlight.Dec()
	r.requests.WithLabelValues(group, outcome).Inc()
}

// Handler exposes the recorder's registry in Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
