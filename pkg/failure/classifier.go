package failure

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// rule maps a keyword set to a category. Order defines precedence: the
// first matching rule wins, so a message naming both "network" and
// "database" classifies as network, biasing toward retryable failures.
type rule struct {
	category Category
	keywords []string
}

var rules = []rule{
	{CategoryNetwork, []string{"timeout", "network"}},
	{CategoryAuthentication, []string{"authentication", "credentials", "session"}},
	{CategoryValidation, []string{"validation", "required"}},
	{CategoryDatabase, []string{"database", "connection"}},
}

// Classify infers a category from a raw failure message. Matching is
// case-insensitive and substring-based, not token-based: "timeouts" still
// matches "timeout". An empty message classifies as unknown; a non-empty
// message with no keyword match classifies as a component failure.
func Classify(message string) Category {
	if message == "" {
		return CategoryUnknown
	}

	folded := cases.Fold().String(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(folded, kw) {
				return r.category
			}
		}
	}
	return CategoryComponent
}

// FromError turns err into a classified Failure tagged with opContext.
// Errors that already carry a classification pass through unchanged.
func FromError(err error, opContext string) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return NewWithContext(Classify(err.Error()), err.Error(), opContext)
}
