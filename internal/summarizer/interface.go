package summarizer

import "context"

// Style selects the summary instruction template.
type Style string

const (
	StyleDetailed Style = "detailed"
	StyleBrief    Style = "brief"
	StyleBullet   Style = "bullet"
)

// ParseStyle validates a user-supplied style name.
func ParseStyle(s string) (Style, bool) {
	switch Style(s) {
	case StyleDetailed, StyleBrief, StyleBullet:
		return Style(s), true
	}
	return "", false
}

// Summarizer turns transcripts into plain-text summaries.
type Summarizer interface {
	// Summarize produces a summary of text in the given style.
	Summarize(ctx context.Context, text string, style Style) (string, error)

	// SummarizeFile summarizes one .txt transcript in the default style,
	// writing <name>.md and <name>.docx into destDir and moving the
	// processed transcript alongside them.
	SummarizeFile(ctx context.Context, path, destDir string) error

	// SummarizeAll runs SummarizeFile over every .txt transcript in srcDir.
	// Used for the backlog sweep at watch-mode startup.
	SummarizeAll(ctx context.Context, srcDir, destDir string) error
}
