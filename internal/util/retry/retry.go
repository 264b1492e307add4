// Package retry provides a small bounded-backoff helper for calls that
// cross a network boundary. Attempts=1 means a single try, no retry.
package retry

import (
	"context"
	"time"
)

type Policy struct {
	Attempts int
	BaseWait time.Duration
	MaxWait  time.Duration
}

// Single is the policy used for interactive gateways: one attempt,
// failures surface immediately so the user is not left waiting.
func Single() Policy {
	return Policy{Attempts: 1}
}

// Default suits background calls that can tolerate a short delay.
func Default() Policy {
	return Policy{
		Attempts: 3,
		BaseWait: 500 * time.Millisecond,
		MaxWait:  5 * time.Second,
	}
}

// Do runs fn up to p.Attempts times, doubling the wait between tries.
// The last error is returned; ctx cancellation stops waiting early.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	wait := p.BaseWait
	var err error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == p.Attempts-1 {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		wait *= 2
		if p.MaxWait > 0 && wait > p.MaxWait {
			wait = p.MaxWait
		}
	}
	return err
}
