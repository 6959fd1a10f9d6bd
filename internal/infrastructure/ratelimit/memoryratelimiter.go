package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"

	"banking/internal/shared/biztime"
)

// sweepEvery is the number of Allow calls between full scans for expired keys
const sweepEvery = 1024

type memoryWindow struct {
	span     time.Duration
	attempts []time.Time
}

// MemoryRateLimiter keeps sliding windows in process memory.
// It serves single-instance deployments that run without Redis.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryWindow
	calls   int
	now     func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		entries: make(map[string]*memoryWindow),
		now:     biztime.NowUTC,
	}
}

// Allow records the attempt only when it fits, so denied requests do not
// extend the window of a client that is over the limit.
func (l *MemoryRateLimiter) Allow(_ context.Context, key string, rule Rule) (bool, error) {
	if !rule.Enabled() {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%sweepEvery == 0 {
		l.sweep(now)
	}

	wk := windowKey(key, rule.Window)
	attempts := l.live(wk, now)
	if len(attempts) >= rule.Limit {
		return false, nil
	}

	if w, ok := l.entries[wk]; ok {
		w.attempts = append(w.attempts, now)
	} else {
		l.entries[wk] = &memoryWindow{span: rule.Window, attempts: []time.Time{now}}
	}
	return true, nil
}

func (l *MemoryRateLimiter) Count(_ context.Context, key string, rule Rule) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return int64(len(l.live(windowKey(key, rule.Window), l.now()))), nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prefix := key + ":"
	for k := range l.entries {
		if strings.HasPrefix(k, prefix) {
			delete(l.entries, k)
		}
	}
	return nil
}

// live prunes the window stored under wk and drops the key once empty
func (l *MemoryRateLimiter) live(wk string, now time.Time) []time.Time {
	w, ok := l.entries[wk]
	if !ok {
		return nil
	}

	w.attempts = prune(w.attempts, now.Add(-w.span))
	if len(w.attempts) == 0 {
		delete(l.entries, wk)
		return nil
	}
	return w.attempts
}

// sweep drops every key whose window holds no attempts anymore
func (l *MemoryRateLimiter) sweep(now time.Time) {
	for k := range l.entries {
		l.live(k, now)
	}
}

func windowKey(key string, window time.Duration) string {
	return key + ":" + window.String()
}

// prune drops attempts at or before cutoff; attempts are kept in arrival order
func prune(attempts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	return attempts[i:]
}
