package timezone

import (
	"context"
	"sync"
	"time"
)

// Ticker drives a repeating callback at a fixed interval, typically the
// 1-second cadence of a live clock display. Start and Stop are idempotent;
// the callback stops on Stop or when the supplied context is cancelled.
type Ticker struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewTicker creates a stopped Ticker with the given interval.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval}
}

// Start begins invoking fn once per interval on a background goroutine.
// Calling Start on a running Ticker is a no-op.
func (t *Ticker) Start(ctx context.Context, fn func(now time.Time)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case now := <-ticker.C:
				fn(now)
			}
		}
	}()
}

// Stop halts the callback. Calling Stop on a stopped Ticker is a no-op.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}
