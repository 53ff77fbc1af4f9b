package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates an Executor backed by os/exec.
func New() Executor {
	return &implExecutor{}
}

// Execute runs the command and returns its stdout. Stderr is folded into the
// error message because ffmpeg reports everything useful there.
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command %q failed: %w\nstderr: %s", name, err, msg)
		}
		return "", fmt.Errorf("command %q failed: %w", name, err)
	}

	return stdout.String(), nil
}

// Available reports whether the named binary is on PATH.
func (e *implExecutor) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
