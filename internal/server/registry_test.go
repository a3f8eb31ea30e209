package server

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func manualOptions(sched **wizard.ManualScheduler) func(string, sync.Locker) wizard.Options {
	return func(string, sync.Locker) wizard.Options {
		*sched = wizard.NewManualScheduler()
		return wizard.Options{Scheduler: *sched}
	}
}

func TestRegistry_CreateGetRemove(t *testing.T) {
	r := NewRegistry(0, nil)
	var sched *wizard.ManualScheduler
	sess := r.Create(manualOptions(&sched))

	got, ok := r.Get(sess.ID())
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, r.Len())

	err := sess.Do(time.Now(), func(c *wizard.Controller) error {
		assert.Equal(t, sess.ID(), c.ID())
		assert.Equal(t, types.SectionBasic, c.Section())
		return nil
	})
	require.NoError(t, err)

	_, ok = r.Remove(sess.ID())
	assert.True(t, ok)
	_, ok = r.Get(sess.ID())
	assert.False(t, ok)
	_, ok = r.Remove(sess.ID())
	assert.False(t, ok)
}

func TestRegistry_ReapIdleSessions(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(30*time.Minute, clock.Now)
	var evicted []string
	r.onEvict = func(s *Session) { evicted = append(evicted, s.ID()) }

	var sched *wizard.ManualScheduler
	idle := r.Create(manualOptions(&sched))
	busy := r.Create(manualOptions(&sched))

	clock.Advance(20 * time.Minute)
	require.NoError(t, busy.Do(clock.Now(), func(*wizard.Controller) error { return nil }))
	clock.Advance(15 * time.Minute)

	reaped := r.Reap()
	assert.Equal(t, []string{idle.ID()}, reaped)
	assert.Equal(t, []string{idle.ID()}, evicted)
	_, ok := r.Get(busy.ID())
	assert.True(t, ok)
}

func TestRegistry_ZeroTTLNeverReaps(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(0, clock.Now)
	var sched *wizard.ManualScheduler
	r.Create(manualOptions(&sched))
	clock.Advance(24 * time.Hour)
	assert.Empty(t, r.Reap())
	assert.Equal(t, 1, r.Len())
}

func TestSession_SubscribeReceivesEvents(t *testing.T) {
	r := NewRegistry(0, nil)
	var sched *wizard.ManualScheduler
	sess := r.Create(manualOptions(&sched))

	events, stop := sess.Subscribe()
	defer stop()

	err := sess.Do(time.Now(), func(c *wizard.Controller) error {
		return c.ChangeResume(types.ResumeFile{Filename: "new.pdf"}, false)
	})
	require.NoError(t, err)

	select {
	case e := <-events:
		assert.Equal(t, wizard.EventResumeChanged, e.Type)
		assert.Equal(t, sess.ID(), e.SessionID)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestSession_RemoveClosesSubscribers(t *testing.T) {
	r := NewRegistry(0, nil)
	var sched *wizard.ManualScheduler
	sess := r.Create(manualOptions(&sched))
	events, stop := sess.Subscribe()
	defer stop()

	r.Remove(sess.ID())

	_, ok := <-events
	assert.False(t, ok)

	late, lateStop := sess.Subscribe()
	defer lateStop()
	_, ok = <-late
	assert.False(t, ok)
}

func TestRegistry_RunReaperStopsOnCancel(t *testing.T) {
	r := NewRegistry(time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.RunReaper(ctx, 10*time.Millisecond) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}
}

func TestRegistry_CloseAll(t *testing.T) {
	r := NewRegistry(0, nil)
	var sched *wizard.ManualScheduler
	r.Create(manualOptions(&sched))
	r.Create(manualOptions(&sched))
	r.CloseAll()
	assert.Equal(t, 0, r.Len())
}
