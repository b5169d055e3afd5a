package tracker

import (
	"sync"
	"time"

	"resilience-go/pkg/failure"
)

// Record is one observed failure. Entries are immutable once appended
// and the log keeps insertion order.
type Record struct {
	Message    string           `json:"message"`
	Category   failure.Category `json:"category"`
	Context    string           `json:"context"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// Tracker keeps an append-only failure log plus per-context retry
// counters. Construct one per application root and pass it by reference;
// all methods are safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	records  []Record
	attempts map[string]int
	metrics  *Metrics
}

func New() *Tracker {
	return &Tracker{
		attempts: make(map[string]int),
	}
}

// Record appends the failure to the log.
func (t *Tracker) Record(f *failure.Failure) {
	if f == nil {
		return
	}

	t.mu.Lock()
	t.records = append(t.records, Record{
		Message:    f.Message,
		Category:   f.Category,
		Context:    f.Context,
		OccurredAt: f.OccurredAt,
	})
	size := len(t.records)
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.observeFailure(f.Category, size)
	}
}

// Log returns a snapshot copy of the failure log, not a live reference.
func (t *Tracker) Log() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Attempts returns the retry counter for the given operation context.
func (t *Tracker) Attempts(opContext string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts[opContext]
}

// IncAttempts bumps the retry counter for opContext and returns the new
// value.
func (t *Tracker) IncAttempts(opContext string) int {
	t.mu.Lock()
	n := t.attempts[opContext] + 1
	t.attempts[opContext] = n
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.observeRetry()
	}
	return n
}

// ResetAttempts drops the retry counter for opContext. Idempotent.
func (t *Tracker) ResetAttempts(opContext string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, opContext)
}

// Clear drops the failure log and all counters. Idempotent.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.records = nil
	t.attempts = make(map[string]int)
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.setLogSize(0)
	}
}
