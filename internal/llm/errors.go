package llm

import "fmt"

// GenerationError carries the provider's message for a failed completion.
// It is surfaced verbatim to the user and never retried automatically
// (key rotation on quota errors happens inside a single call).
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("text generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
