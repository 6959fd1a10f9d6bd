package ratelimit

import (
	"context"
	"time"
)

// Rule caps a key at Limit requests within a sliding Window
type Rule struct {
	Limit  int
	Window time.Duration
}

// Enabled reports whether the rule restricts anything
func (r Rule) Enabled() bool {
	return r.Limit > 0 && r.Window > 0
}

type RateLimiter interface {
	// Allow reports whether the attempt fits in the window and records it
	// only when it does; denied attempts never extend the window
	Allow(ctx context.Context, key string, rule Rule) (bool, error)
	// Count returns the attempts currently inside the window
	Count(ctx context.Context, key string, rule Rule) (int64, error)
	Reset(ctx context.Context, key string) error
}
