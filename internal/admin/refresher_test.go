package admin

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingService struct {
	Service
	loads atomic.Int64
}

func (s *countingService) LoadAll(ctx context.Context) (Data, error) {
	s.loads.Add(1)
	return Data{}, nil
}

func TestRefresherRunsLoadAllUntilStopped(t *testing.T) {
	svc := &countingService{}
	r := NewRefresher(svc, 5*time.Millisecond, nil, nil)

	r.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for svc.loads.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("refresher never ticked, loads=%d", svc.loads.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	r.Stop()
	after := svc.loads.Load()
	time.Sleep(30 * time.Millisecond)
	if got := svc.loads.Load(); got != after {
		t.Fatalf("refresher kept running after Stop: %d -> %d", after, got)
	}
}

func TestRefresherStartIsIdempotent(t *testing.T) {
	svc := &countingService{}
	r := NewRefresher(svc, time.Hour, nil, nil)

	r.Start(context.Background())
	r.Start(context.Background())
	r.Stop()
	r.Stop()
}

func TestRefresherStopWithoutStart(t *testing.T) {
	r := NewRefresher(&countingService{}, 0, nil, nil)
	if r.interval != DefaultRefreshInterval {
		t.Fatalf("expected default interval, got %v", r.interval)
	}
	r.Stop()
}

func TestRefresherStopsOnContextCancel(t *testing.T) {
	svc := &countingService{}
	r := NewRefresher(svc, 5*time.Millisecond, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	time.Sleep(20 * time.Millisecond)
	before := svc.loads.Load()
	time.Sleep(30 * time.Millisecond)
	if got := svc.loads.Load(); got != before {
		t.Fatalf("refresher kept running after context cancel: %d -> %d", before, got)
	}

	r.Stop()
}
