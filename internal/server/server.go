package server

import (
	"context"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/transcript-genie/internal/assembler"
	"github.com/nguyentantai21042004/transcript-genie/internal/config"
	"github.com/nguyentantai21042004/transcript-genie/internal/llm"
	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
	"github.com/nguyentantai21042004/transcript-genie/internal/transcript"
)

// GeneratorFactory builds a text generator for one request. The credential
// is request-scoped: it comes in with the form and never outlives the call.
type GeneratorFactory func(apiKey string) llm.Generator

type Options struct {
	Config           *config.Config
	Logger           logger.Logger
	Resolver         *transcript.Resolver
	Assembler        assembler.Assembler
	GeneratorFactory GeneratorFactory
}

type Server struct {
	cfg       *config.Config
	logger    logger.Logger
	resolver  *transcript.Resolver
	assembler assembler.Assembler
	newGen    GeneratorFactory
	jobs      *jobStore
	hub       *hub
	baseCtx   context.Context
}

func New(opts Options) *Server {
	return &Server{
		cfg:       opts.Config,
		logger:    opts.Logger,
		resolver:  opts.Resolver,
		assembler: opts.Assembler,
		newGen:    opts.GeneratorFactory,
		jobs:      newJobStore(),
		hub:       newHub(opts.Logger),
		baseCtx:   context.Background(),
	}
}

// Routes wires up the page, the JSON API, and the progress websocket.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/summarize", s.handleSummarize)
	mux.HandleFunc("POST /api/summarize/docx", s.handleSummaryDocx)
	mux.HandleFunc("POST /api/dialogue", s.handleDialogue)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleJobStatus)
	mux.HandleFunc("GET /api/jobs/{id}/audio", s.handleJobAudio)
	mux.HandleFunc("GET /ws/jobs/{id}", s.handleJobProgress)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully. In-flight
// assembly jobs are cancelled through the same context, which triggers their
// cleanup path.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx

	srv := &http.Server{
		Addr:    s.cfg.Server.Address,
		Handler: s.Routes(),
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening on %s", s.cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
