// Package metrics exposes prometheus metrics for a teller run.
package metrics

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/hance08/teller/internal/bank"
	"github.com/hance08/teller/internal/logx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics holds every collector for one process. Each instance owns its
// registry so several can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	Transactions    *prometheus.CounterVec
	EntriesLoaded   prometheus.Gauge
	EntriesProduced prometheus.Counter
	EntriesConsumed prometheus.Counter
	BufferDepth     prometheus.Gauge
	RunDuration     prometheus.Histogram
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Bank operations applied, by operation and outcome",
		}, []string{"op", "outcome"}),
		EntriesLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_entries",
			Help:      "Number of entries loaded from the ledger for the current run",
		}),
		EntriesProduced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_produced_total",
			Help:      "Ledger entries moved into the bounded buffer",
		}),
		EntriesConsumed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_consumed_total",
			Help:      "Ledger entries taken from the bounded buffer",
		}),
		BufferDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "buffer_depth",
			Help:      "Items currently held by the bounded buffer",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time from the first consumer start to the last join",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe implements bank.Observer.
func (m *Metrics) Observe(o bank.Outcome) {
	outcome := outcomeSuccess
	if !o.OK {
		outcome = outcomeFailure
	}
	m.Transactions.WithLabelValues(o.Op.String(), outcome).Inc()
}

func (m *Metrics) Produced(depth int) {
	m.EntriesProduced.Inc()
	m.BufferDepth.Set(float64(depth))
}

func (m *Metrics) Consumed(depth int) {
	m.EntriesConsumed.Inc()
	m.BufferDepth.Set(float64(depth))
}

func (m *Metrics) Loaded(n int) {
	m.EntriesLoaded.Set(float64(n))
}

func (m *Metrics) Finished(elapsed time.Duration) {
	m.RunDuration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics on addr. The returned
// server should be shut down by the caller.
func (m *Metrics) Serve(addr string) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Error("METRICS", "server stopped: ", err)
		}
	}()
	logx.Info("METRICS", "serving on ", ln.Addr().String())
	return srv, nil
}
