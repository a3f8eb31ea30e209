package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/wizard"
)

// subscriberBuffer is how many events a slow SSE client may lag behind
// before events are dropped for it.
const subscriberBuffer = 32

// Session owns one wizard controller. Every use of the controller, including
// its timer callbacks, happens under mu.
type Session struct {
	id   string
	mu   sync.Mutex
	ctrl *wizard.Controller

	lastSeen time.Time

	subsMu sync.Mutex
	subs   map[chan wizard.Event]struct{}
	closed bool
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Do runs fn with exclusive access to the controller.
func (s *Session) Do(now time.Time, fn func(c *wizard.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	return fn(s.ctrl)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Subscribe returns a channel of session events and a func to stop listening.
// The channel is closed when the session is discarded.
func (s *Session) Subscribe() (<-chan wizard.Event, func()) {
	ch := make(chan wizard.Event, subscriberBuffer)
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}
	return ch, func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

func (s *Session) publish(e wizard.Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (s *Session) close() {
	s.mu.Lock()
	s.ctrl.Close()
	s.mu.Unlock()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.closed = true
	for ch := range s.subs {
		close(ch)
		delete(s.subs, ch)
	}
}

// Registry holds the live sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
	onEvict  func(*Session)
}

// NewRegistry creates a registry evicting sessions idle longer than idleTTL.
// A zero idleTTL disables eviction.
func NewRegistry(idleTTL time.Duration, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{sessions: make(map[string]*Session), idleTTL: idleTTL, now: now}
}

// Create builds a session. build receives the new session id and the lock
// that timer callbacks must hold, and returns the controller options.
func (r *Registry) Create(build func(id string, mu sync.Locker) wizard.Options) *Session {
	s := &Session{
		id:       uuid.NewString(),
		lastSeen: r.now(),
		subs:     make(map[chan wizard.Event]struct{}),
	}
	opts := build(s.id, &s.mu)
	opts.ID = s.id
	if opts.Scheduler == nil {
		opts.Scheduler = wizard.NewTimerScheduler(&s.mu)
	}
	next := opts.OnEvent
	opts.OnEvent = func(e wizard.Event) {
		if next != nil {
			next(e)
		}
		s.publish(e)
	}
	s.ctrl = wizard.New(opts)

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove discards the session with id and closes it.
func (r *Registry) Remove(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.close()
	}
	return s, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Reap discards every session idle longer than the TTL and returns their ids.
func (r *Registry) Reap() []string {
	if r.idleTTL <= 0 {
		return nil
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.RLock()
	var stale []string
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range stale {
		if s, ok := r.Remove(id); ok && r.onEvict != nil {
			r.onEvict(s)
		}
	}
	return stale
}

// RunReaper reaps every interval until ctx is done.
func (r *Registry) RunReaper(ctx context.Context, interval time.Duration) error {
	if r.idleTTL <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Reap()
		}
	}
}

// CloseAll discards every session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range sessions {
		s.close()
	}
}
