package retry

import (
	"context"
	"time"
)

// Sleeper suspends the calling goroutine for d, waking early with the
// context error when ctx is done. Injectable so tests can run on virtual
// time instead of waiting out real delays.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
