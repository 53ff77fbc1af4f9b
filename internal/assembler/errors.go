package assembler

import "fmt"

// AssemblyError wraps any failure during synthesis, shaping, or export.
// By the time it propagates, every transient file of the job is gone and no
// partial output remains.
type AssemblyError struct {
	Err error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("audio assembly failed: %v", e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}
