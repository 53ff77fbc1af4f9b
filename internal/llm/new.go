package llm

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

type Options struct {
	APIKeys         []string
	Model           string
	MaxOutputTokens int32
	Temperature     float32
	Limiter         *rate.Limiter
	Logger          logger.Logger
}

type implGenerator struct {
	apiKeys []string

	// mu guards currentKey; generators are shared across goroutines in
	// watch mode.
	mu         sync.Mutex
	currentKey int

	model           string
	maxOutputTokens int32
	temperature     float32
	limiter         *rate.Limiter
	logger          logger.Logger
}

// New creates a Generator that rotates through the supplied Gemini API keys
// on quota errors. The limiter, when shared across requests, bounds the
// overall call rate against the provider.
func New(opts Options) Generator {
	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implGenerator{
		apiKeys:         opts.APIKeys,
		model:           model,
		maxOutputTokens: opts.MaxOutputTokens,
		temperature:     opts.Temperature,
		limiter:         opts.Limiter,
		logger:          opts.Logger,
	}
}
