package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v56/github"
)

// Sentinel errors surfaced to callers. Use errors.Is to match them.
var (
	ErrRateLimited  = errors.New("github api rate limit exceeded")
	ErrUserNotFound = errors.New("github user not found")
)

// Messages returned to end users, matching the wording of the web version.
const (
	rateLimitMessage = "GitHub API rate limit exceeded. Please try again later."
	notFoundMessage  = "User not found"
)

// APIError is a failed GitHub API call with the status to report upstream.
type APIError struct {
	Status    int
	Message   string
	RateLimit bool
	err       error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s (status %d): %v", e.Message, e.Status, e.err)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Unwrap exposes the sentinel or underlying error.
func (e *APIError) Unwrap() error {
	return e.err
}

// translateError maps go-github errors onto APIError values. Context errors
// and nil pass through unchanged.
func translateError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return &APIError{Status: http.StatusForbidden, Message: rateLimitMessage, RateLimit: true, err: ErrRateLimited}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		status := respErr.Response.StatusCode
		if status == http.StatusNotFound {
			return &APIError{Status: status, Message: notFoundMessage, err: ErrUserNotFound}
		}
		return &APIError{Status: status, Message: "GitHub API error: " + http.StatusText(status), err: err}
	}

	return &APIError{Status: http.StatusBadGateway, Message: "GitHub API request failed", err: err}
}
