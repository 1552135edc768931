package search

import (
	"context"
	"errors"

	"github.com/hyperifyio/careerscout/internal/listing"
)

// Request is one job search invocation. It is immutable once validated and
// carries no state between searches.
type Request struct {
	Role       string
	Location   string
	NumResults int
}

// Response is the success arm of a search outcome: one page of listings plus
// the API's global match count, which may exceed the page size.
type Response struct {
	Listings   []listing.Raw
	TotalCount int
}

// Provider is a minimal interface for job-listing search backends.
type Provider interface {
	Search(ctx context.Context, req Request) (*Response, error)
	Name() string
}

// Reason labels a classified search failure so the aggregator can pick the
// right user-facing guidance. An empty result set is not a failure and has
// no reason; it is a Response with zero listings.
type Reason int

const (
	ReasonUnknown Reason = iota
	// ReasonInvalidInput covers requests rejected before any network call.
	ReasonInvalidInput
	// ReasonMissingCredentials covers absent API identity or key, detected
	// before any network call.
	ReasonMissingCredentials
	// ReasonNetwork covers exhausted retries: timeouts, connection errors,
	// rate limiting, and 5xx responses.
	ReasonNetwork
	// ReasonClientRejected covers non-retryable 4xx responses.
	ReasonClientRejected
	// ReasonMalformedResponse covers undecodable or schema-less payloads.
	ReasonMalformedResponse
)

// Failure is the failure arm of a search outcome.
type Failure struct {
	Reason Reason
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return "search failed"
}

func (f *Failure) Unwrap() error { return f.Err }

// ReasonOf extracts the classified reason from an error chain, or
// ReasonUnknown when no Failure is present.
func ReasonOf(err error) Reason {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ReasonUnknown
}
