package journey

import (
	"context"
	"time"
)

// Default retry settings.
const (
	DefaultMaxRetries = 2
	DefaultBaseDelay  = time.Second
)

// RetryPolicy controls the per-batch retry loop. A batch makes at most
// MaxRetries+1 attempts and waits BaseDelay*2^n after failed attempt n.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy returns two retries with a one second base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

// Delay returns the wait after the given zero-based failed attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return p.BaseDelay << uint(attempt)
}

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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
