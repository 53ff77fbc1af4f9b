package llm

import "context"

// Generator produces a free-text completion for a prompt. Both the summarizer
// and the dialogue generator go through this interface, differing only in the
// prompts they build.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
