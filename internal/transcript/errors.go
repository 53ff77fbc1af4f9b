package transcript

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL means the URL does not contain a recognizable video id.
	ErrInvalidURL = errors.New("no video ID found in URL")

	// ErrEmptyTranscript means the resolved transcript contains no usable text.
	// Detected before any generative call is made.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrUnknownMethod means the request named an input method that does
	// not exist.
	ErrUnknownMethod = errors.New("unknown input method")
)

// FetchError carries the provider's message for a failed transcript fetch.
// Surfaced verbatim to the user, not retried.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch transcript: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
