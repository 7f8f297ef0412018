package session

import (
	"context"
	"sync"
	"time"

	"tienduca/pkg/logger"
)

// SignOutFunc terminates a user's session at the auth provider.
type SignOutFunc func(ctx context.Context, uid string) error

type watched struct {
	timer    *time.Timer
	provider *Provider
}

// InactivityWatcher signs users out after a fixed period without
// activity. Each user has at most one live timer; any activity signal
// resets it.
type InactivityWatcher struct {
	idle    time.Duration
	signOut SignOutFunc

	mu       sync.Mutex
	sessions map[string]*watched
	closed   bool
}

func NewInactivityWatcher(idle time.Duration, signOut SignOutFunc) *InactivityWatcher {
	return &InactivityWatcher{
		idle:     idle,
		signOut:  signOut,
		sessions: make(map[string]*watched),
	}
}

// Session returns the observable state for a user, creating it in the
// Loading state when unseen.
func (w *InactivityWatcher) Session(uid string) *Provider {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionLocked(uid).provider
}

func (w *InactivityWatcher) sessionLocked(uid string) *watched {
	s, ok := w.sessions[uid]
	if !ok {
		s = &watched{provider: NewProvider()}
		w.sessions[uid] = s
	}
	return s
}

// Touch records user activity: it marks the session authenticated and
// restarts the countdown.
func (w *InactivityWatcher) Touch(uid string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	s := w.sessionLocked(uid)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(w.idle, func() {
		w.expire(uid)
	})
	provider := s.provider
	w.mu.Unlock()

	provider.Set(State{Status: StatusAuthenticated, UserID: uid})
}

func (w *InactivityWatcher) expire(uid string) {
	w.mu.Lock()
	s, ok := w.sessions[uid]
	if !ok {
		w.mu.Unlock()
		return
	}
	delete(w.sessions, uid)
	w.mu.Unlock()

	s.provider.Set(State{Status: StatusAnonymous})

	if err := w.signOut(context.Background(), uid); err != nil {
		logger.Warn("Inactivity sign-out failed for %s: %v", uid, err)
		return
	}
	logger.Info("Signed out %s after %s of inactivity", uid, w.idle)
}

// Stop ends tracking for a user without signing them out, for explicit
// logouts that already revoked the session.
func (w *InactivityWatcher) Stop(uid string) {
	w.mu.Lock()
	s, ok := w.sessions[uid]
	if ok {
		if s.timer != nil {
			s.timer.Stop()
		}
		delete(w.sessions, uid)
	}
	w.mu.Unlock()

	if ok {
		s.provider.Set(State{Status: StatusAnonymous})
	}
}

func (w *InactivityWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for uid, s := range w.sessions {
		if s.timer != nil {
			s.timer.Stop()
		}
		delete(w.sessions, uid)
	}
}
