package summarizer

import (
	"github.com/nguyentantai21042004/transcript-genie/internal/llm"
	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

type implSummarizer struct {
	gen    llm.Generator
	logger logger.Logger
	style  Style
}

// New creates a Summarizer over the given text generator. style is the
// default used by SummarizeAll; Summarize takes its style per call.
func New(gen llm.Generator, style Style, log logger.Logger) Summarizer {
	if style == "" {
		style = StyleDetailed
	}
	return &implSummarizer{
		gen:    gen,
		logger: log,
		style:  style,
	}
}
