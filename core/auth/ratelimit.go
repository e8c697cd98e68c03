package auth

import (
	"sync"
	"time"
)

type attemptEntry struct {
	failures    int
	lastAttempt time.Time
}

// Limiter is a process-wide failed-login counter keyed by identifier
// (typically the login email). State is in-memory only and does not survive
// restarts. Expiry is lazy: entries older than the lockout window are purged
// when next accessed, there is no background sweep.
type Limiter struct {
	mu          sync.Mutex
	entries     map[string]*attemptEntry
	maxAttempts int
	lockout     time.Duration
	nowFunc     func() time.Time
}

func NewLimiter(maxAttempts int, lockout time.Duration) *Limiter {
	return &Limiter{
		entries:     make(map[string]*attemptEntry),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		nowFunc:     time.Now,
	}
}

// IsRateLimited reports whether key has accumulated maxAttempts failures
// within the lockout window. An entry older than the window is deleted as a
// side effect.
func (l *Limiter) IsRateLimited(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		return false
	}
	if l.nowFunc().Sub(entry.lastAttempt) > l.lockout {
		delete(l.entries, key)
		return false
	}
	return entry.failures >= l.maxAttempts
}

// RecordAttempt notes a login attempt outcome for key. A success deletes the
// entry entirely; a failure creates or increments it and refreshes its
// timestamp.
func (l *Limiter) RecordAttempt(key string, success bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if success {
		delete(l.entries, key)
		return
	}
	if entry, ok := l.entries[key]; ok {
		entry.failures++
		entry.lastAttempt = l.nowFunc()
		return
	}
	l.entries[key] = &attemptEntry{failures: 1, lastAttempt: l.nowFunc()}
}

// RetryAfter returns how long until key's lockout expires. Zero when key is
// not currently limited.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || entry.failures < l.maxAttempts {
		return 0
	}
	remaining := l.lockout - l.nowFunc().Sub(entry.lastAttempt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
