package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

// Scheduler drives the refresh and cleanup loops until Stop is called.
type Scheduler struct {
	refresher    *Refresher
	cleaner      *Cleaner
	refreshEvery time.Duration
	cleanupEvery time.Duration
	group        *threading.RoutineGroup
	cancelMu     sync.Mutex
	cancel       context.CancelFunc
}

func New(refresher *Refresher, cleaner *Cleaner, refreshEvery, cleanupEvery time.Duration) *Scheduler {
	return &Scheduler{
		refresher:    refresher,
		cleaner:      cleaner,
		refreshEvery: refreshEvery,
		cleanupEvery: cleanupEvery,
		group:        threading.NewRoutineGroup(),
	}
}

// Start launches both loops. Cleanup runs once immediately; refresh waits for
// its first tick.
func (s *Scheduler) Start(ctx context.Context) {
	s.cancelMu.Lock()
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.cancelMu.Unlock()

	s.group.RunSafe(func() {
		runEvery(ctx, "cleanup", s.cleanupEvery, true, func(ctx context.Context) {
			s.cleaner.Run(ctx)
		})
	})
	s.group.RunSafe(func() {
		runEvery(ctx, "refresh", s.refreshEvery, false, func(ctx context.Context) {
			s.refresher.Tick(ctx)
		})
	})
}

// Stop cancels future ticks and waits for in-flight ones to return.
func (s *Scheduler) Stop() {
	s.cancelMu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancelMu.Unlock()
	s.group.Wait()
}

func runEvery(ctx context.Context, name string, every time.Duration, immediate bool, fn func(context.Context)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	if immediate {
		threading.RunSafe(func() { fn(ctx) })
	}
	for {
		select {
		case <-ctx.Done():
			logx.Infof("scheduler: stopping %s loop", name)
			return
		case <-ticker.C:
			threading.RunSafe(func() { fn(ctx) })
		}
	}
}
