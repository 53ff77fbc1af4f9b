package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

// fakeGenerator records prompts and plays back canned responses.
type fakeGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want Style
	}{
		{"detailed", true, StyleDetailed},
		{"brief", true, StyleBrief},
		{"bullet", true, StyleBullet},
		{"verbose", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		got, ok := ParseStyle(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseStyle(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSummarizePrependsStyleInstruction(t *testing.T) {
	gen := &fakeGenerator{reply: "a summary"}
	s := New(gen, StyleDetailed, logger.Nop())

	got, err := s.Summarize(context.Background(), "the transcript body", StyleBullet)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "a summary" {
		t.Errorf("Summarize() = %q", got)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.HasPrefix(prompt, stylePrompts[StyleBullet]) {
		t.Errorf("prompt missing bullet instruction prefix: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "the transcript body") {
		t.Errorf("prompt missing transcript suffix: %q", prompt)
	}
}

func TestSummarizeUnknownStyle(t *testing.T) {
	gen := &fakeGenerator{reply: "unused"}
	s := New(gen, StyleDetailed, logger.Nop())

	if _, err := s.Summarize(context.Background(), "text", Style("bogus")); err == nil {
		t.Error("Summarize() = nil error for unknown style")
	}
	if len(gen.prompts) != 0 {
		t.Error("generator should not be called for unknown style")
	}
}

func TestSummarizeFile(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	path := filepath.Join(srcDir, "talk.txt")
	if err := os.WriteFile(path, []byte("one transcript"), 0644); err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{reply: "the summary"}
	s := New(gen, StyleBrief, logger.Nop())

	if err := s.SummarizeFile(context.Background(), path, destDir); err != nil {
		t.Fatalf("SummarizeFile() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(destDir, "talk.md"))
	if err != nil {
		t.Fatalf("missing summary: %v", err)
	}
	if !strings.Contains(string(data), "the summary") {
		t.Errorf("summary content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(destDir, "talk.docx")); err != nil {
		t.Errorf("missing docx: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("transcript not moved out of source dir")
	}
	if _, err := os.Stat(filepath.Join(destDir, "talk.txt")); err != nil {
		t.Errorf("transcript not moved into dest dir: %v", err)
	}
}

func TestSummarizeFileRejectsEmpty(t *testing.T) {
	srcDir := t.TempDir()

	path := filepath.Join(srcDir, "empty.txt")
	if err := os.WriteFile(path, []byte("  \n\t "), 0644); err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{reply: "unused"}
	s := New(gen, StyleDetailed, logger.Nop())

	if err := s.SummarizeFile(context.Background(), path, t.TempDir()); err == nil {
		t.Error("SummarizeFile() = nil error for empty transcript")
	}
	if len(gen.prompts) != 0 {
		t.Error("generator should never see an empty transcript")
	}
}

func TestSummarizeAll(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	for i, content := range []string{"first transcript", "second transcript"} {
		path := filepath.Join(srcDir, fmt.Sprintf("talk_%d.txt", i))
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Non-transcript files are ignored.
	if err := os.WriteFile(filepath.Join(srcDir, "notes.pdf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{reply: "## Key points\n\n- one\n- two"}
	s := New(gen, StyleDetailed, logger.Nop())

	if err := s.SummarizeAll(context.Background(), srcDir, destDir); err != nil {
		t.Fatalf("SummarizeAll() error = %v", err)
	}

	if len(gen.prompts) != 2 {
		t.Errorf("generator called %d times, want 2", len(gen.prompts))
	}

	for i := range 2 {
		mdPath := filepath.Join(destDir, fmt.Sprintf("talk_%d.md", i))
		data, err := os.ReadFile(mdPath)
		if err != nil {
			t.Fatalf("missing summary %s: %v", mdPath, err)
		}
		if !strings.Contains(string(data), "Key points") {
			t.Errorf("summary %s missing content: %q", mdPath, data)
		}
		// Transcript moved out of the source dir.
		if _, err := os.Stat(filepath.Join(srcDir, fmt.Sprintf("talk_%d.txt", i))); !os.IsNotExist(err) {
			t.Errorf("transcript %d not moved out of source dir", i)
		}
	}
}

func TestSummarizeAllSkipsEmptyTranscript(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(srcDir, "empty.txt"), []byte("  \n\t "), 0644); err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{reply: "unused"}
	s := New(gen, StyleDetailed, logger.Nop())

	if err := s.SummarizeAll(context.Background(), srcDir, destDir); err != nil {
		t.Fatalf("SummarizeAll() error = %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Error("generator should never see an empty transcript")
	}
}

func TestExportDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.docx")

	md := "# Heading\n\nSome **bold** text.\n\n- bullet one\n1. numbered\n\n---\n"
	if err := ExportDocx("My Talk", md, path); err != nil {
		t.Fatalf("ExportDocx() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output docx is empty")
	}
}
