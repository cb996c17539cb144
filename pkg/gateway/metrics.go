package gateway

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus series the /metrics endpoint exposes:
// per-operation latency, config reinit count, and malformed-frame count.
// Session count and catalog size are sampled on scrape via gauge funcs
// rather than pushed on every call.
type Metrics struct {
	latency        *prometheus.HistogramVec
	reinitTotal    prometheus.Counter
	malformedTotal prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "toolsuggest_operation_duration_seconds",
			Help:    "Latency of submit/feed/reset/ping operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		reinitTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolsuggest_reinit_total",
			Help: "Number of times the engine was reinitialized via PUT /config or a config file reload.",
		}),
		malformedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolsuggest_malformed_messages_total",
			Help: "Number of WebSocket frames rejected as malformed.",
		}),
	}
}

// Registry builds a Prometheus registry carrying this Gateway's metrics
// plus gauge funcs sampling live session count and catalog size.
func (g *Gateway) Registry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		g.metrics.latency,
		g.metrics.reinitTotal,
		g.metrics.malformedTotal,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "toolsuggest_sessions",
			Help: "Current number of live sessions.",
		}, func() float64 { return float64(g.SessionCount()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "toolsuggest_catalog_size",
			Help: "Current number of tools in the catalog.",
		}, func() float64 { return float64(g.CatalogSize()) }),
	)
	return reg
}
