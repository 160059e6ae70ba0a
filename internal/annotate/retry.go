package annotate

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Default retry policy values for chunk queries.
const (
	DefaultMaxAttempts   = 5
	DefaultInitialDelay  = 1 * time.Second
	DefaultMaxDelay      = 30 * time.Second
	DefaultBackoffFactor = 2.0
	defaultJitterFactor  = 0.1
)

// RetryPolicy bounds the per-chunk retry loop. Every remote failure is
// treated as transient and retried up to MaxAttempts times with
// exponential backoff; the budget is deliberately finite so a permanently
// broken id set surfaces as ErrRemoteUnavailable instead of looping
// forever.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps exponential growth of the delay.
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each failed attempt.
	BackoffFactor float64
}

// DefaultRetryPolicy returns the retry policy used when none is
// configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   DefaultMaxAttempts,
		InitialDelay:  DefaultInitialDelay,
		MaxDelay:      DefaultMaxDelay,
		BackoffFactor: DefaultBackoffFactor,
	}
}

// do runs fn under the policy. Cancellation is honored at every retry
// boundary. On exhaustion the last error is returned wrapped, for the
// caller to classify.
func (p RetryPolicy) do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else { //nolint:revive // Keeps attempt bookkeeping next to the call
			lastErr = err
		}

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(withJitter(delay)):
		}

		delay = time.Duration(float64(delay) * p.BackoffFactor)
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return fmt.Errorf("%d attempts failed: %w", attempts, lastErr)
}

// withJitter randomizes a delay by ±jitterFactor to avoid retry
// synchronization against a rate-limited service.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	jitter := time.Duration(float64(d) * defaultJitterFactor)
	if jitter == 0 {
		return d
	}
	return d - jitter + time.Duration(rand.Int63n(int64(2*jitter))) //nolint:gosec // Jitter needs no crypto randomness
}
