// Package metrics 定義帳本的 Prometheus 指標
//
// 所有方法在 nil receiver 上都是 no-op，未啟用指標時可直接傳 nil。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitz"

type Metrics struct {
	registry *prometheus.Registry

	friendsAdded prometheus.Counter
	friends      prometheus.Gauge
	settlements  *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	grpcDuration *prometheus.HistogramVec
}

// New 建立指標並註冊到獨立的 Registry (含 Go runtime 與 process 指標)
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		friendsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "friends_added_total",
			Help:      "Number of friends added to the ledger.",
		}),
		friends: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "friends",
			Help:      "Number of friends currently in the ledger.",
		}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Number of settlements applied, by payer.",
		}, []string{"payer"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Number of rejected ledger operations.",
		}, []string{"operation", "reason"}),
		grpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "Duration of gRPC requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.friendsAdded,
		m.friends,
		m.settlements,
		m.rejections,
		m.grpcDuration,
	)
	return m
}

// Registry 回傳底層的 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 回傳 /metrics 的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) FriendAdded() {
	if m == nil {
		return
	}
	m.friendsAdded.Inc()
	m.friends.Inc()
}

func (m *Metrics) SettlementApplied(payer string) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(payer).Inc()
}

func (m *Metrics) Rejected(operation, reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) ObserveGRPC(method, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.grpcDuration.WithLabelValues(method, code).Observe(d.Seconds())
}
