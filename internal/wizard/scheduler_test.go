package wizard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler()
	var fired []string

	s.Schedule(3*time.Second, func() { fired = append(fired, "c") })
	s.Schedule(time.Second, func() { fired = append(fired, "a") })
	cancel := s.Schedule(2*time.Second, func() { fired = append(fired, "b") })
	cancel()

	s.Advance(2 * time.Second)
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, 1, s.Pending())

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "c"}, fired)
	assert.Equal(t, 0, s.Pending())
}

func TestManualScheduler_CallbackSchedulesMore(t *testing.T) {
	s := NewManualScheduler()
	count := 0
	var again func()
	again = func() {
		count++
		if count < 3 {
			s.Schedule(0, again)
		}
	}
	s.Schedule(time.Second, again)
	s.Advance(time.Second)
	assert.Equal(t, 3, count)
}

func TestTimerScheduler(t *testing.T) {
	var mu sync.Mutex
	s := NewTimerScheduler(&mu)

	done := make(chan struct{})
	s.Schedule(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}

	ran := make(chan struct{}, 1)
	cancel := s.Schedule(50*time.Millisecond, func() { ran <- struct{}{} })
	cancel()
	select {
	case <-ran:
		t.Fatal("cancelled callback ran")
	case <-time.After(100 * time.Millisecond):
	}
}
