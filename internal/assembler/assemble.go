package assembler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/transcript-genie/internal/dialogue"
)

// Assemble builds the conversation track for a script. Lines are processed
// strictly in order; every transient file lives in a per-job directory that
// is removed on every exit path, so neither success nor failure leaks files.
// On failure no output file survives either.
func (a *implAssembler) Assemble(ctx context.Context, script dialogue.Script, progress Progress) (*Result, error) {
	jobID := uuid.NewString()
	jobDir := filepath.Join(a.tempRoot, "assemble-"+jobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return nil, &AssemblyError{Err: fmt.Errorf("create job dir: %w", err)}
	}
	defer os.RemoveAll(jobDir)

	outPath := filepath.Join(a.tempRoot, "conversation-"+jobID+".mp3")

	result, err := a.assemble(ctx, jobDir, outPath, script, progress)
	if err != nil {
		if rmErr := os.Remove(outPath); rmErr != nil && !os.IsNotExist(rmErr) {
			a.logger.Warn(ctx, "Failed to remove partial output %s: %v", outPath, rmErr)
		}
		return nil, &AssemblyError{Err: err}
	}
	return result, nil
}

func (a *implAssembler) assemble(ctx context.Context, jobDir, outPath string, script dialogue.Script, progress Progress) (*Result, error) {
	start := time.Now()
	tl := BuildPlan(script, a.pauses())
	total := tl.ClipCount()

	a.logger.Info(ctx, "Assembling conversation: %d lines, %d segments", total, len(tl))

	silences := make(map[time.Duration]string)
	done := 0

	for i := range tl {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seg := &tl[i]
		switch seg.Kind {
		case KindSilence:
			path, err := a.silenceFile(ctx, jobDir, seg.Duration, silences)
			if err != nil {
				return nil, err
			}
			seg.Path = path

		case KindClip:
			if err := a.renderClip(ctx, jobDir, done, seg); err != nil {
				return nil, err
			}
			done++
			if progress != nil {
				progress(fmt.Sprintf("voicing %s", seg.Speaker), done, total)
			}
			a.logger.Debug(ctx, "Rendered line %d/%d (%s, %s)", done, total, seg.Speaker, seg.Duration)
		}
	}

	if progress != nil {
		progress("exporting", total, total)
	}
	if err := a.export(ctx, jobDir, tl, outPath); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "Conversation exported: %s (%s of audio in %s)",
		outPath, tl.TotalDuration().Round(time.Millisecond), time.Since(start).Round(time.Millisecond))

	return &Result{Path: outPath, Timeline: tl}, nil
}
