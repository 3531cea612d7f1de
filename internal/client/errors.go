package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingCookie means no session cookie could be found in any of the
// known locations.
var ErrMissingCookie = errors.New("session cookie not found: set EC_COOKIE, create ~/.everybodycodes.cookie, or run 'eccli init'")

// ErrAlreadySubmitted is returned when the service rejects a duplicate
// answer submission (HTTP 409).
var ErrAlreadySubmitted = errors.New("answer already submitted")

// StatusError is a non-success HTTP response, with a snippet of the
// body for context.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// KeyFetchError means the quest key lookup could not be completed:
// either the service was unreachable or it answered with a non-success
// status. The lookup is never retried here beyond the transport's
// transient-failure policy; callers decide whether to try again.
type KeyFetchError struct {
	Year int
	Day  int
	Err  error
}

func (e *KeyFetchError) Error() string {
	return fmt.Sprintf("fetching quest keys for %d/%d: %v", e.Year, e.Day, e.Err)
}

func (e *KeyFetchError) Unwrap() error { return e.Err }
