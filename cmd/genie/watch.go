package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-genie/internal/summarizer"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Summarize every transcript dropped into the input folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return runWatch(a)
	},
}

func runWatch(a *app) error {
	if a.cfg.Paths.Input == "" || a.cfg.Paths.Output == "" {
		return fmt.Errorf("watch mode needs paths.input and paths.output in the config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sweep the backlog first so files dropped before startup are not stuck
	// waiting for the next filesystem event.
	sum := summarizer.New(a.newGenerator(""), summarizer.StyleDetailed, a.log)
	if err := sum.SummarizeAll(ctx, a.cfg.Paths.Input, a.cfg.Paths.Output); err != nil {
		a.log.Warn(ctx, "Initial sweep failed: %v", err)
	}

	w, err := newTranscriptWatcher(a)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.log.Info(ctx, "Watching %s", a.cfg.Paths.Input)
	return w.Start(ctx)
}
