package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var stylePrompts = map[Style]string{
	StyleDetailed: "Create a comprehensive summary that captures all main topics and key points, preserving important details and context.",
	StyleBrief:    "Create a concise 2-3 paragraph summary that captures the core message and highlights the most important points.",
	StyleBullet:   "Create a bullet-point summary that lists the key takeaways in order of importance.",
}

// Summarize prepends the style instruction to the transcript and returns the
// raw completion text.
func (s *implSummarizer) Summarize(ctx context.Context, text string, style Style) (string, error) {
	instruction, ok := stylePrompts[style]
	if !ok {
		return "", fmt.Errorf("unknown summary style %q", style)
	}

	s.logger.Debug(ctx, "Summarizing %d chars, style=%s", len(text), style)
	return s.gen.GenerateText(ctx, instruction+"\n\n"+text)
}

// SummarizeFile summarizes one transcript in the configured default style and
// writes <name>.md plus <name>.docx into destDir. The processed transcript is
// moved alongside its summaries so a restart does not re-process it.
func (s *implSummarizer) SummarizeFile(ctx context.Context, path, destDir string) error {
	name := strings.TrimSuffix(filepath.Base(path), ".txt")

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return fmt.Errorf("transcript %s is empty", name)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	summary, err := s.Summarize(ctx, string(content), s.style)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", name, err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)

	mdPath := filepath.Join(destDir, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	docxPath := filepath.Join(destDir, name+".docx")
	if err := ExportDocx(name, summary, docxPath); err != nil {
		s.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	}

	// Move the transcript next to its summary so it won't be re-processed.
	if err := os.Rename(path, filepath.Join(destDir, filepath.Base(path))); err != nil {
		s.logger.Warn(ctx, "Failed to move transcript %s: %v", path, err)
	}

	s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
	return nil
}

// SummarizeAll sweeps srcDir, summarizing every .txt transcript it finds.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	files, err := discoverTranscripts(srcDir)
	if err != nil {
		return fmt.Errorf("discover transcripts: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcript files found in %s", srcDir)
		return nil
	}

	s.logger.Info(ctx, "Found %d transcripts to summarize", len(files))

	successCount := 0
	failCount := 0

	for i, path := range files {
		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), filepath.Base(path))
		if err := s.SummarizeFile(ctx, path, destDir); err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", path, err)
			failCount++
			continue
		}
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", successCount, failCount)
	return nil
}

func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".txt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
