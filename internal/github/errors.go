package github

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/go-github/v66/github"
)

// APIError is a non-2xx write whose body carried a message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return "github: API error (status=" + strconv.Itoa(e.StatusCode) + "): " + e.Message
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == 404
}

// apiError extracts the server message from go-github's error types. It
// returns nil when err carries no usable message.
func apiError(err error) *APIError {
	var (
		ghErr    *github.ErrorResponse
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &rateErr) && rateErr.Message != "":
		return &APIError{StatusCode: statusOf(rateErr.Response), Message: rateErr.Message}
	case errors.As(err, &abuseErr) && abuseErr.Message != "":
		return &APIError{StatusCode: statusOf(abuseErr.Response), Message: abuseErr.Message}
	case errors.As(err, &ghErr) && ghErr.Message != "":
		return &APIError{StatusCode: statusOf(ghErr.Response), Message: ghErr.Message}
	}
	return nil
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
