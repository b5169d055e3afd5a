package retry

import (
	"testing"
	"time"

	"resilience-go/pkg/failure"
)

func TestPolicy_ShouldRetry(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		attempt  int
		category failure.Category
		expected bool
	}{
		{"network first failure", 0, failure.CategoryNetwork, true},
		{"network second failure", 1, failure.CategoryNetwork, true},
		{"network last allowed retry", 2, failure.CategoryNetwork, true},
		{"network retries exhausted", 3, failure.CategoryNetwork, false},
		{"database first failure", 0, failure.CategoryDatabase, true},
		{"validation never retried", 0, failure.CategoryValidation, false},
		{"authentication never retried", 0, failure.CategoryAuthentication, false},
		{"component never retried", 0, failure.CategoryComponent, false},
		{"unknown never retried", 0, failure.CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := failure.New(tt.category, "boom")
			if got := policy.ShouldRetry(tt.attempt, f); got != tt.expected {
				t.Errorf("ShouldRetry(%d, %v) = %v, want %v", tt.attempt, tt.category, got, tt.expected)
			}
		})
	}
}

func TestPolicy_ShouldRetry_ConditionOverride(t *testing.T) {
	always := Policy{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		Condition:  func(f *failure.Failure) bool { return true },
	}
	f := failure.New(failure.CategoryValidation, "field required")
	if !always.ShouldRetry(0, f) {
		t.Error("condition override should permit retrying validation failures")
	}
	if always.ShouldRetry(3, f) {
		t.Error("condition override must not bypass the retry limit")
	}

	never := Policy{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		Condition:  func(f *failure.Failure) bool { return false },
	}
	if never.ShouldRetry(0, failure.New(failure.CategoryNetwork, "timeout")) {
		t.Error("condition override should block retrying network failures")
	}
}

func TestPolicy_Delay(t *testing.T) {
	policy := Policy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond}

	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
	}
	for n, want := range expected {
		if got := policy.Delay(n); got != want {
			t.Errorf("Delay(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestPolicy_Delay_Capped(t *testing.T) {
	policy := Policy{
		MaxRetries: 5,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   250 * time.Millisecond,
	}

	tests := []struct {
		n        int
		expected time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 250 * time.Millisecond},
		{10, 250 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := policy.Delay(tt.n); got != tt.expected {
			t.Errorf("Delay(%d) = %v, want %v", tt.n, got, tt.expected)
		}
	}

	// Cap below the base delay still wins.
	tight := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: 50 * time.Millisecond}
	if got := tight.Delay(0); got != 50*time.Millisecond {
		t.Errorf("Delay(0) = %v, want 50ms", got)
	}
}

func TestPolicy_Delay_LargeAttemptDoesNotOverflow(t *testing.T) {
	uncapped := Policy{BaseDelay: 100 * time.Millisecond}
	if got := uncapped.Delay(80); got <= 0 {
		t.Errorf("Delay(80) = %v, want a positive duration", got)
	}

	capped := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}
	if got := capped.Delay(80); got != time.Second {
		t.Errorf("Delay(80) = %v, want 1s", got)
	}
}
