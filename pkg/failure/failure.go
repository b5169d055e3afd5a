package failure

import (
	"fmt"
	"time"
)

// Category labels an observed failure and drives the recovery action.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNetwork
	CategoryAuthentication
	CategoryValidation
	CategoryDatabase
	CategoryComponent
)

func (c Category) String() string {
	switch c {
	case CategoryNetwork:
		return "network"
	case CategoryAuthentication:
		return "authentication"
	case CategoryValidation:
		return "validation"
	case CategoryDatabase:
		return "database"
	case CategoryComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Action is the recovery behavior suggested to the caller once a failure
// is terminal.
type Action int

const (
	ActionRetry Action = iota
	ActionFallback
	ActionRedirect
	ActionDisplay
)

func (a Action) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionRedirect:
		return "redirect"
	case ActionDisplay:
		return "display"
	default:
		return "fallback"
	}
}

// Action returns the default recovery action for the category.
func (c Category) Action() Action {
	switch c {
	case CategoryNetwork, CategoryDatabase:
		return ActionRetry
	case CategoryAuthentication:
		return ActionRedirect
	case CategoryValidation:
		return ActionDisplay
	default:
		return ActionFallback
	}
}

// TerminalAction returns the action reported once retries are exhausted.
// Retryable categories downgrade to fallback, so a terminal outcome never
// tells the caller to retry.
func (c Category) TerminalAction() Action {
	if a := c.Action(); a != ActionRetry {
		return a
	}
	return ActionFallback
}

// Retryable reports whether failures of this category may be retried.
// Validation and authentication failures are surfaced immediately.
func (c Category) Retryable() bool {
	return c == CategoryNetwork || c == CategoryDatabase
}

// UserMessage returns the template shown to the user for the action.
func (a Action) UserMessage() string {
	switch a {
	case ActionRetry:
		return "Connection problem. Retrying..."
	case ActionRedirect:
		return "Your session has expired. Please sign in again."
	case ActionDisplay:
		return "Please check the highlighted fields and try again."
	default:
		return "Something went wrong. Please try again later."
	}
}

// UserMessage returns the human-readable template shown for the category.
func (c Category) UserMessage() string {
	switch c {
	case CategoryNetwork:
		return "Connection problem. Retrying..."
	case CategoryAuthentication:
		return "Your session has expired. Please sign in again."
	case CategoryValidation:
		return "Please check the highlighted fields and try again."
	case CategoryDatabase:
		return "We are having trouble reaching the service. Please try again shortly."
	case CategoryComponent:
		return "Something went wrong loading this page."
	default:
		return "An unexpected error occurred."
	}
}

// Failure is a classified error, produced at the boundary where a raw
// failure is first caught. Once created it is treated as immutable.
type Failure struct {
	Category   Category
	Message    string
	Context    string
	OccurredAt time.Time
}

func New(category Category, message string) *Failure {
	return &Failure{
		Category:   category,
		Message:    message,
		OccurredAt: time.Now(),
	}
}

// NewWithContext tags the failure with the logical operation it belongs to.
func NewWithContext(category Category, message, opContext string) *Failure {
	f := New(category, message)
	f.Context = opContext
	return f
}

func (f *Failure) Error() string {
	if f.Context != "" {
		return fmt.Sprintf("%s failure in %s: %s", f.Category, f.Context, f.Message)
	}
	return fmt.Sprintf("%s failure: %s", f.Category, f.Message)
}

// Action returns the recovery action suggested for this failure.
func (f *Failure) Action() Action {
	return f.Category.Action()
}
