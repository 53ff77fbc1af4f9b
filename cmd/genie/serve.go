package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/transcript-genie/internal/assembler"
	"github.com/nguyentantai21042004/transcript-genie/internal/llm"
	"github.com/nguyentantai21042004/transcript-genie/internal/server"
	"github.com/nguyentantai21042004/transcript-genie/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-genie/internal/transcript"
	"github.com/nguyentantai21042004/transcript-genie/internal/tts"
	"github.com/nguyentantai21042004/transcript-genie/internal/watcher"
	"github.com/nguyentantai21042004/transcript-genie/pkg/executor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and API; watches the input folder when configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return runServe(a)
	},
}

func runServe(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exec := executor.New()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if !exec.Available(bin) {
			a.log.Warn(ctx, "%s not found on PATH; conversation audio will fail", bin)
		}
	}

	asm := assembler.New(
		tts.New(a.cfg.TTS.Endpoint, nil, a.log),
		exec,
		a.cfg.Audio,
		a.cfg.TTS.Language,
		a.cfg.Paths.Temp,
		a.log,
	)

	srv := server.New(server.Options{
		Config:    a.cfg,
		Logger:    a.log,
		Resolver:  transcript.NewResolver(transcript.NewProvider("", a.cfg.TTS.Language, nil, a.log)),
		Assembler: asm,
		GeneratorFactory: func(apiKey string) llm.Generator {
			return a.newGenerator(apiKey)
		},
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })

	if a.cfg.Paths.Input != "" && a.cfg.Paths.Output != "" {
		w, err := newTranscriptWatcher(a)
		if err != nil {
			return err
		}
		g.Go(func() error {
			defer w.Stop()
			return w.Start(ctx)
		})
	}

	return g.Wait()
}

// newTranscriptWatcher wires the drop-folder pipeline. Each handler
// summarizes only its own file, so concurrent handlers never touch the same
// transcript.
func newTranscriptWatcher(a *app) (watcher.Watcher, error) {
	sum := summarizer.New(a.newGenerator(""), summarizer.StyleDetailed, a.log)
	handler := func(ctx context.Context, filePath string) error {
		return sum.SummarizeFile(ctx, filePath, a.cfg.Paths.Output)
	}
	return watcher.New(a.cfg.Paths.Input, handler, a.log, 2)
}
