package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics tracks order submissions and dashboard refresh runs.
type StorefrontMetrics struct {
	refreshDuration *prometheus.HistogramVec
	refreshSuccess  *prometheus.CounterVec
	refreshFailure  *prometheus.CounterVec

	ordersSubmitted  prometheus.Counter
	lineWriteFailure prometheus.Counter
	snapshotFallback prometheus.Counter
}

// New registers the storefront metrics on the provided registerer.
func New(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	refreshDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_refresh_duration_seconds",
		Help:    "Duration of admin dashboard refresh runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	refreshSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_success",
		Help: "Successful dashboard refresh runs.",
	}, []string{"job"})
	refreshFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_failure",
		Help: "Failed dashboard refresh runs.",
	}, []string{"job"})
	ordersSubmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Orders accepted at checkout.",
	})
	lineWriteFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_line_write_failures_total",
		Help: "Order-line batch writes redirected to the fallback queue.",
	})
	snapshotFallback := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_snapshot_fallback_total",
		Help: "Catalog reads served from the cached snapshot.",
	})
	reg.MustRegister(refreshDuration, refreshSuccess, refreshFailure, ordersSubmitted, lineWriteFailure, snapshotFallback)
	return &StorefrontMetrics{
		refreshDuration:  refreshDuration,
		refreshSuccess:   refreshSuccess,
		refreshFailure:   refreshFailure,
		ordersSubmitted:  ordersSubmitted,
		lineWriteFailure: lineWriteFailure,
		snapshotFallback: snapshotFallback,
	}
}

// ObserveRefreshDuration records the duration for the named refresh job.
func (m *StorefrontMetrics) ObserveRefreshDuration(job string, duration time.Duration) {
	if m == nil || m.refreshDuration == nil {
		return
	}
	m.refreshDuration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncRefreshSuccess increments the success counter for the named refresh job.
func (m *StorefrontMetrics) IncRefreshSuccess(job string) {
	if m == nil || m.refreshSuccess == nil {
		return
	}
	m.refreshSuccess.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncRefreshFailure increments the failure counter for the named refresh job.
func (m *StorefrontMetrics) IncRefreshFailure(job string) {
	if m == nil || m.refreshFailure == nil {
		return
	}
	m.refreshFailure.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncOrdersSubmitted counts an accepted order.
func (m *StorefrontMetrics) IncOrdersSubmitted() {
	if m == nil || m.ordersSubmitted == nil {
		return
	}
	m.ordersSubmitted.Inc()
}

// IncLineWriteFailure counts a line batch diverted to the fallback queue.
func (m *StorefrontMetrics) IncLineWriteFailure() {
	if m == nil || m.lineWriteFailure == nil {
		return
	}
	m.lineWriteFailure.Inc()
}

// IncSnapshotFallback counts a catalog read served from cache.
func (m *StorefrontMetrics) IncSnapshotFallback() {
	if m == nil || m.snapshotFallback == nil {
		return
	}
	m.snapshotFallback.Inc()
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
