package assembler

import (
	"context"

	"github.com/nguyentantai21042004/transcript-genie/internal/dialogue"
)

// Progress is invoked as assembly advances. done/total count spoken lines,
// plus one final export step. May be nil.
type Progress func(stage string, done, total int)

// Result is a finished conversation track.
type Result struct {
	Path     string
	Timeline Timeline
}

// Assembler converts a dialogue script into a single MP3 with per-speaker
// voice shaping, inter-utterance pauses, and fade transitions.
type Assembler interface {
	Assemble(ctx context.Context, script dialogue.Script, progress Progress) (*Result, error)
}
