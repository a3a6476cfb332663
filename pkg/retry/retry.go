package retry

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"syscall"
	"time"
)

// Terminal wraps an error so Do gives up immediately instead of
// retrying it. Validation and constraint failures should be terminal:
// re-running them burns three backoff windows to reach the same answer.
type Terminal struct {
	Err error
}

func (t *Terminal) Error() string {
	return t.Err.Error()
}

func (t *Terminal) Unwrap() error {
	return t.Err
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &Terminal{Err: err}
}

// Policy controls backoff behaviour.
type Policy struct {
	MaxAttempts int           // total attempts including the first
	BaseDelay   time.Duration // delay before the first retry
	MaxDelay    time.Duration // cap on a single backoff sleep
	// Retryable decides whether an error is transient. When nil,
	// DefaultRetryable is used.
	Retryable func(error) bool
}

// DefaultPolicy mirrors the historical 3-attempt / 1s-base behaviour,
// with jitter and error classification added.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// DefaultRetryable treats network-level failures as transient and
// everything else as terminal.
func DefaultRetryable(err error) bool {
	var term *Terminal
	if errors.As(err, &term) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	return false
}

// Do runs op, retrying transient failures with exponential backoff and
// full jitter. The last error is returned once attempts are exhausted
// or a terminal error is seen.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = DefaultRetryable
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, backoff(p, attempt-1)); err != nil {
				return err
			}
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			var term *Terminal
			if errors.As(lastErr, &term) {
				return term.Err
			}
			return lastErr
		}
	}
	return lastErr
}

// backoff returns base * 2^attempt with full jitter, capped at MaxDelay.
func backoff(p Policy, attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d) + 1))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
