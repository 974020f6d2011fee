package admin

import (
	"context"
	"sync"
	"time"

	"github.com/karimbenali/boucherie-backend/pkg/logger"
	"github.com/karimbenali/boucherie-backend/pkg/metrics"
)

const refreshJob = "dashboard_refresh"

// DefaultRefreshInterval matches the dashboard's polling cadence.
const DefaultRefreshInterval = 30 * time.Second

// Refresher periodically re-runs the dashboard's full data load while it is
// running. Start and Stop are idempotent; Stop blocks until the loop exits.
type Refresher struct {
	service  Service
	interval time.Duration
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher builds a refresher around the admin service. A non-positive
// interval falls back to the default thirty seconds.
func NewRefresher(service Service, interval time.Duration, m *metrics.StorefrontMetrics, logg *logger.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{service: service, interval: interval, metrics: m, logg: logg}
}

// Start launches the polling loop. Calling Start on a running refresher is
// a no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.run(loopCtx, r.done)
}

// Stop cancels the loop and waits for it to drain. Safe to call when the
// refresher never started.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	start := time.Now()
	_, err := r.service.LoadAll(ctx)
	r.metrics.ObserveRefreshDuration(refreshJob, time.Since(start))
	if err != nil {
		r.metrics.IncRefreshFailure(refreshJob)
		if r.logg != nil {
			r.logg.Error(ctx, "dashboard refresh failed", err)
		}
		return
	}
	r.metrics.IncRefreshSuccess(refreshJob)
}
