package snapshot

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot is the latest coin list together with the time it was captured
// (epoch milliseconds). A zero Timestamp means no refresh has succeeded yet.
type Snapshot struct {
	Data      []Coin `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Empty reports whether the snapshot holds no coins.
func (s Snapshot) Empty() bool {
	return len(s.Data) == 0
}

var emptySnapshot = &Snapshot{Data: []Coin{}}

// State owns the snapshot cache and the maintenance flag. It is shared by the
// refresh and cleanup schedulers and the HTTP handlers.
type State struct {
	current     atomic.Pointer[Snapshot]
	maintenance atomic.Bool
}

// NewState returns a State holding the empty snapshot.
func NewState() *State {
	s := &State{}
	s.current.Store(emptySnapshot)
	return s
}

// Get returns the current snapshot. Data and Timestamp always belong to the
// same refresh. Callers must treat Data as read-only.
func (s *State) Get() Snapshot {
	if cur := s.current.Load(); cur != nil {
		return *cur
	}
	return *emptySnapshot
}

// Replace publishes coins as the new snapshot captured at at. The previous
// list is dropped, never merged. Published timestamps strictly increase: a
// capture time not after the current one is bumped by one millisecond.
func (s *State) Replace(coins []Coin, at time.Time) Snapshot {
	if coins == nil {
		coins = []Coin{}
	}
	ts := at.UnixMilli()
	for {
		prev := s.current.Load()
		next := &Snapshot{Data: coins, Timestamp: ts}
		if prev != nil && next.Timestamp <= prev.Timestamp {
			next.Timestamp = prev.Timestamp + 1
		}
		if s.current.CompareAndSwap(prev, next) {
			return *next
		}
	}
}

// Restore installs snap only while nothing has been published yet. It is used
// to warm the cache at startup and never overwrites a live refresh.
func (s *State) Restore(snap Snapshot) bool {
	if snap.Empty() || snap.Timestamp <= 0 {
		return false
	}
	prev := s.current.Load()
	if prev != nil && prev.Timestamp != 0 {
		return false
	}
	restored := snap
	return s.current.CompareAndSwap(prev, &restored)
}

// Codes returns the coin codes of the current snapshot in rank order.
func (s *State) Codes() []string {
	snap := s.Get()
	codes := make([]string, 0, len(snap.Data))
	for _, c := range snap.Data {
		codes = append(codes, c.Code)
	}
	return codes
}

// EnterMaintenance sets the maintenance flag and returns the function that
// clears it. The release func is safe to call more than once; callers defer it.
func (s *State) EnterMaintenance() (release func()) {
	s.maintenance.Store(true)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.maintenance.Store(false)
		})
	}
}

// InMaintenance reports whether history writes are currently suppressed.
func (s *State) InMaintenance() bool {
	return s.maintenance.Load()
}
