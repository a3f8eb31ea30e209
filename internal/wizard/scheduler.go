package wizard

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn once after d. The returned cancel func stops a callback
// that has not started yet.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules with time.AfterFunc and runs every callback while
// holding mu, so deferred effects are serialized with the owner's other
// mutations.
type TimerScheduler struct {
	mu sync.Locker
}

// NewTimerScheduler creates a TimerScheduler guarded by mu.
func NewTimerScheduler(mu sync.Locker) *TimerScheduler {
	return &TimerScheduler{mu: mu}
}

func (s *TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
	})
	return func() { t.Stop() }
}

// ManualScheduler fires callbacks only when Advance moves its clock past their
// deadline. It is meant for tests and for driving a controller from a CLI.
type ManualScheduler struct {
	now     time.Duration
	nextID  int
	pending map[int]manualTask
}

type manualTask struct {
	at time.Duration
	fn func()
}

// NewManualScheduler returns a ManualScheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]manualTask)}
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) func() {
	id := s.nextID
	s.nextID++
	s.pending[id] = manualTask{at: s.now + d, fn: fn}
	return func() { delete(s.pending, id) }
}

// Pending returns the number of callbacks still waiting.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// Advance moves the clock forward by d and runs every due callback in
// deadline order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		ids := make([]int, 0, len(s.pending))
		for id, task := range s.pending {
			if task.at <= s.now {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := s.pending[ids[i]], s.pending[ids[j]]
			if a.at != b.at {
				return a.at < b.at
			}
			return ids[i] < ids[j]
		})
		task := s.pending[ids[0]]
		delete(s.pending, ids[0])
		task.fn()
	}
}
