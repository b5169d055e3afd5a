package retry

import (
	"context"

	"resilience-go/pkg/failure"
	"resilience-go/pkg/logger"
	"resilience-go/pkg/tracker"
)

// OnRetry fires before every backoff sleep with the retry counter for the
// operation context (1 for the first retry) and the failure that
// triggered it.
type OnRetry func(attempt int, f *failure.Failure)

// Executor runs operations under a Policy, recording every observed
// failure in the tracker.
type Executor struct {
	policy  Policy
	tracker *tracker.Tracker
	sleep   Sleeper
	onRetry OnRetry
	log     *logger.Logger
}

type Option func(*Executor)

// WithSleeper replaces the real backoff sleep.
func WithSleeper(s Sleeper) Option {
	return func(ex *Executor) { ex.sleep = s }
}

// WithOnRetry installs an observability hook.
func WithOnRetry(cb OnRetry) Option {
	return func(ex *Executor) { ex.onRetry = cb }
}

func NewExecutor(policy Policy, tr *tracker.Tracker, opts ...Option) *Executor {
	ex := &Executor{
		policy:  policy,
		tracker: tr,
		sleep:   SleepContext,
		log:     logger.GetLogger().WithField("component", "retry_executor"),
	}
	for _, opt := range opts {
		opt(ex)
	}
	return ex
}

// Result is the terminal outcome of a retried operation. A successful
// result carries Value; a failed one carries LastFailure. Never neither.
type Result[T any] struct {
	Succeeded   bool
	Value       T
	Attempts    int
	LastFailure *failure.Failure
}

// TerminalAction returns the recovery action for a failed result.
// Retryable categories downgrade to fallback once retries are spent, so
// the caller is never told to keep retrying a terminal outcome. Only
// meaningful when Succeeded is false.
func (r Result[T]) TerminalAction() failure.Action {
	if r.LastFailure == nil {
		return failure.ActionFallback
	}
	return r.LastFailure.Category.TerminalAction()
}

// Do invokes op until it succeeds, the policy stops retrying, or ctx is
// canceled. Attempts within one opContext are strictly sequential; calls
// under different contexts interleave freely. The terminal failure is
// returned to the caller, never swallowed.
func Do[T any](ctx context.Context, ex *Executor, opContext string, op func(context.Context) (T, error)) (Result[T], error) {
	var res Result[T]

	// A new retry sequence restarts the context's counter, so it never
	// accumulates past MaxRetries across consecutive exhausted calls.
	ex.tracker.ResetAttempts(opContext)

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			res.Attempts = attempt
			return res, err
		}

		value, err := op(ctx)
		res.Attempts = attempt + 1
		if err == nil {
			res.Succeeded = true
			res.Value = value
			ex.tracker.ResetAttempts(opContext)
			return res, nil
		}

		f := failure.FromError(err, opContext)
		ex.tracker.Record(f)
		res.LastFailure = f

		if !ex.policy.ShouldRetry(attempt, f) {
			ex.log.WithError(f).WithFields(map[string]interface{}{
				"context":  opContext,
				"attempts": res.Attempts,
				"action":   f.Category.TerminalAction().String(),
			}).Warn("Operation failed, not retrying")
			return res, f
		}

		retries := ex.tracker.IncAttempts(opContext)
		if ex.onRetry != nil {
			ex.onRetry(retries, f)
		}

		delay := ex.policy.Delay(attempt)
		ex.log.WithFields(map[string]interface{}{
			"context":  opContext,
			"attempt":  res.Attempts,
			"delay_ms": delay.Milliseconds(),
		}).Debug("Retrying after failure")

		if err := ex.sleep(ctx, delay); err != nil {
			return res, err
		}
	}
}
