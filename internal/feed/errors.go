package feed

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSourceClosed is returned when the upstream ends the stream.
	ErrSourceClosed = errors.New("feed source closed")
	// ErrUnknownSource is returned by New for an unrecognized source name.
	ErrUnknownSource = errors.New("unknown feed source")
	// ErrMissingURL is returned when a network source has no address.
	ErrMissingURL = errors.New("feed source requires a url")
)

// StatusError captures a non-200 response from a polled upstream.
type StatusError struct {
	Source     string
	StatusCode int
	RetryAfter time.Duration
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Source, e.StatusCode, e.Body)
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
