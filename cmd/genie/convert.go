package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-genie/internal/assembler"
	"github.com/nguyentantai21042004/transcript-genie/internal/dialogue"
	"github.com/nguyentantai21042004/transcript-genie/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-genie/internal/tts"
	"github.com/nguyentantai21042004/transcript-genie/pkg/executor"
)

var (
	convertMode  string
	convertStyle string
	convertOut   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <transcript.txt>",
	Short: "Turn one transcript file into a summary or a conversation MP3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return runConvert(a, args[0])
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertMode, "mode", "summary", "summary or conversation")
	convertCmd.Flags().StringVar(&convertStyle, "style", "detailed", "summary style: detailed, brief, or bullet")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output path (default derives from the input name)")
}

func runConvert(a *app, inputPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fmt.Errorf("transcript %s is empty", inputPath)
	}

	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))

	switch convertMode {
	case "summary":
		return convertSummary(ctx, a, text, base)
	case "conversation":
		return convertConversation(ctx, a, text, base)
	default:
		return fmt.Errorf("unknown mode %q", convertMode)
	}
}

func convertSummary(ctx context.Context, a *app, text, base string) error {
	style, ok := summarizer.ParseStyle(convertStyle)
	if !ok {
		return fmt.Errorf("unknown summary style %q", convertStyle)
	}

	sum := summarizer.New(a.newGenerator(""), style, a.log)
	summary, err := sum.Summarize(ctx, text, style)
	if err != nil {
		return err
	}

	out := convertOut
	if out == "" {
		out = base + ".md"
	}
	if err := os.WriteFile(out, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	a.log.Info(ctx, "Wrote %s", out)

	docxPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".docx"
	if err := summarizer.ExportDocx(filepath.Base(base), summary, docxPath); err != nil {
		return fmt.Errorf("export docx: %w", err)
	}
	a.log.Info(ctx, "Wrote %s", docxPath)
	return nil
}

func convertConversation(ctx context.Context, a *app, text, base string) error {
	exec := executor.New()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if !exec.Available(bin) {
			return fmt.Errorf("%s not found on PATH", bin)
		}
	}

	script, err := dialogue.NewGenerator(a.newGenerator(""), a.log).Generate(ctx, text)
	if err != nil {
		return err
	}

	asm := assembler.New(
		tts.New(a.cfg.TTS.Endpoint, nil, a.log),
		exec,
		a.cfg.Audio,
		a.cfg.TTS.Language,
		a.cfg.Paths.Temp,
		a.log,
	)

	result, err := asm.Assemble(ctx, script, func(stage string, done, total int) {
		a.log.Info(ctx, "%s (%d/%d)", stage, done, total)
	})
	if err != nil {
		return err
	}

	out := convertOut
	if out == "" {
		out = base + ".mp3"
	}
	if err := moveFile(result.Path, out); err != nil {
		return err
	}

	scriptPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".txt"
	if err := os.WriteFile(scriptPath, []byte(script.Render()), 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}

	a.log.Info(ctx, "Wrote %s (%.1fs of audio)", out, result.Timeline.TotalDuration().Seconds())
	return nil
}

// moveFile renames when possible and falls back to copy-and-remove when the
// temp dir sits on a different filesystem.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
