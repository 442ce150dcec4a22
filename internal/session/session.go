// Package session tracks who is logged in to the dashboard and who logged
// in recently. State lives only in memory; a restart forgets everyone.
package session

import (
	"errors"
	"sync"
	"time"

	"hostdash/internal/models"
)

// DefaultHistorySize is how many distinct logins the history remembers.
const DefaultHistorySize = 10

// fallbackIP is recorded when the transport did not report a peer address.
const fallbackIP = "127.0.0.1"

var (
	// ErrUnauthorized covers both unknown users and wrong passwords.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrNotLoggedIn is returned by Logout for a user with no session.
	ErrNotLoggedIn = errors.New("user not logged in")
)

// Verifier checks a username/password pair.
type Verifier interface {
	Verify(username, password string) bool
}

type Option func(*Registry)

// WithClock replaces time.Now as the source of login timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithHistorySize sets the capacity of the recent-logins ring. Values
// below one are ignored.
func WithHistorySize(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.history = newHistory(n)
		}
	}
}

// Registry owns the current-users map and the recent-logins history.
// All methods are safe for concurrent use.
type Registry struct {
	creds Verifier
	now   func() time.Time

	mu      sync.Mutex
	current map[string]models.SessionRecord
	order   []string
	history *history
}

func NewRegistry(creds Verifier, opts ...Option) *Registry {
	r := &Registry{
		creds:   creds,
		now:     time.Now,
		current: make(map[string]models.SessionRecord),
		history: newHistory(DefaultHistorySize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Login verifies the credentials and records a session for username.
// A repeat login refreshes the current session but leaves the user's
// history entry where it was.
func (r *Registry) Login(username, password, clientIP string) (models.SessionRecord, error) {
	if r.creds == nil || !r.creds.Verify(username, password) {
		return models.SessionRecord{}, ErrUnauthorized
	}
	if clientIP == "" {
		clientIP = fallbackIP
	}

	rec := models.SessionRecord{
		Username:  username,
		LoginTime: r.now().Format(models.TimeLayout),
		IPAddress: clientIP,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.current[username]; !ok {
		r.order = append(r.order, username)
	}
	r.current[username] = rec
	r.history.add(rec)

	return rec, nil
}

func (r *Registry) Logout(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.current[username]; !ok {
		return ErrNotLoggedIn
	}
	delete(r.current, username)
	for i, name := range r.order {
		if name == username {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListCurrent returns a snapshot of the logged-in users. The order is the
// order users first logged in, but callers should not rely on it.
func (r *Registry) ListCurrent() []models.SessionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.SessionRecord, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.current[name])
	}
	return out
}

// ListRecent returns the login history, newest first.
func (r *Registry) ListRecent() []models.SessionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.list()
}

func (r *Registry) CountCurrent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.current)
}
