package retry

import (
	"math"
	"time"

	"resilience-go/pkg/failure"
)

// Condition overrides the per-category retryability decision.
type Condition func(f *failure.Failure) bool

// Policy decides whether a failed attempt is retried and how long to back
// off before the next one.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration // zero means uncapped
	Condition  Condition     // nil means category default
}

// DefaultPolicy allows up to 3 retries (4 attempts total) starting at 100ms.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
	}
}

// ShouldRetry reports whether another attempt is permitted after `attempt`
// completed retries (0 for the first failure).
func (p Policy) ShouldRetry(attempt int, f *failure.Failure) bool {
	if attempt >= p.MaxRetries {
		return false
	}
	if p.Condition != nil {
		return p.Condition(f)
	}
	return f.Category.Retryable()
}

// Delay computes the backoff before retry n (0-based): BaseDelay * 2^n,
// capped at MaxDelay when configured. Doubling that overflows clamps to
// the maximum representable duration.
func (p Policy) Delay(n int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < n; i++ {
		d *= 2
		if d <= 0 {
			d = time.Duration(math.MaxInt64)
		}
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
