package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SearchError carries a message safe to show to the caller. Recoverable
// failures are isolated to one job; a non-recoverable error aborts the whole
// batch.
type SearchError struct {
	Message     string
	Recoverable bool
}

func (e *SearchError) Error() string {
	return e.Message
}

// ErrCapExceeded is raised by the usage ledger when the global daily call
// budget is exhausted. It is the only non-recoverable classification.
var ErrCapExceeded = &SearchError{
	Message: "Make Me Fly has been really popular today! " +
		"To keep this free tool running, we limit daily searches. " +
		"Please try again tomorrow.",
	Recoverable: false,
}

// ErrClientLimitReached rejects a batch before any work starts when the
// caller has used up today's per-client search budget.
var ErrClientLimitReached = &SearchError{
	Message: "You've reached today's search limit. " +
		"Come back tomorrow for more flight deals!",
	Recoverable: false,
}

type FailureKind string

const (
	FailureAuth    FailureKind = "auth"
	FailureNetwork FailureKind = "network"
	FailureServer  FailureKind = "server"
	FailureClient  FailureKind = "client"
)

// ProviderError is a raw upstream failure as observed by the provider
// adapter, before classification.
type ProviderError struct {
	Kind       FailureKind
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s failure: status %d", e.Kind, e.StatusCode)
	}

	return fmt.Sprintf("provider %s failure", e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Classify maps any error to a user-safe SearchError. Already-classified
// errors pass through unchanged; everything else follows a first-match-wins
// order over the provider failure shape.
func Classify(err error) *SearchError {
	var classified *SearchError
	if errors.As(err, &classified) {
		return classified
	}

	var provider *ProviderError
	if !errors.As(err, &provider) {
		return genericSearchError()
	}

	switch {
	case provider.Kind == FailureAuth || provider.StatusCode == 401:
		return &SearchError{
			Message: "Make Me Fly is having trouble connecting to its data source. " +
				"Please try again in a few minutes.",
			Recoverable: true,
		}
	case provider.StatusCode == 429:
		return &SearchError{
			Message: "Searches are coming in faster than our data provider allows. " +
				"Please wait a moment and try again.",
			Recoverable: true,
		}
	case provider.Kind == FailureServer || provider.StatusCode >= 500:
		return &SearchError{
			Message: "Our flight data provider is experiencing issues. " +
				"This isn't you — please try again shortly.",
			Recoverable: true,
		}
	case provider.Kind == FailureNetwork:
		return &SearchError{
			Message:     "The search is taking longer than expected. Please try again.",
			Recoverable: true,
		}
	}

	body := strings.ToLower(provider.Body)
	if strings.Contains(body, "quota") || strings.Contains(body, "limit") {
		return &SearchError{
			Message: "Make Me Fly has been popular this month! " +
				"We've hit our data limit. Resets on the 1st.",
			Recoverable: true,
		}
	}

	return genericSearchError()
}

func genericSearchError() *SearchError {
	return &SearchError{
		Message:     "Something unexpected happened. Please try again.",
		Recoverable: true,
	}
}
