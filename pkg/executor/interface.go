package executor

import "context"

// Executor runs external commands (ffmpeg, ffprobe). Abstracted so the audio
// pipeline can be tested with a fake that records invocations.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Available(name string) bool
}
