package assembler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/transcript-genie/internal/dialogue"
	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

// fakeEngine fabricates audio bytes per utterance, like the mock synthesizers
// used elsewhere in the stack.
type fakeEngine struct {
	texts  []string
	lang   string
	failOn string
}

func (f *fakeEngine) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if f.failOn != "" && text == f.failOn {
		return nil, errors.New("synthesis refused")
	}
	f.texts = append(f.texts, text)
	f.lang = language
	return []byte("audio:" + text), nil
}

type execCall struct {
	name string
	args []string
}

// fakeExecutor records invocations and fabricates the files ffmpeg would
// produce. ffprobe answers a fixed duration for every clip.
type fakeExecutor struct {
	calls      []execCall
	concatList string
	clipSec    string
	failWhen   func(name string, args []string) bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, execCall{name: name, args: args})

	if f.failWhen != nil && f.failWhen(name, args) {
		return "", errors.New("command failed")
	}

	switch name {
	case "ffprobe":
		sec := f.clipSec
		if sec == "" {
			sec = "1.200000"
		}
		return fmt.Sprintf(`{"format":{"duration":"%s"}}`, sec), nil
	case "ffmpeg":
		if i := slices.Index(args, "concat"); i >= 0 {
			listPath := args[slices.Index(args, "-i")+1]
			data, err := os.ReadFile(listPath)
			if err != nil {
				return "", err
			}
			f.concatList = string(data)
		}
		// ffmpeg writes its output to the final argument.
		return "", os.WriteFile(args[len(args)-1], []byte("fake-mp3"), 0644)
	}
	return "", nil
}

func (f *fakeExecutor) Available(string) bool { return true }

func (f *fakeExecutor) countLavfi() int {
	n := 0
	for _, c := range f.calls {
		if c.name == "ffmpeg" && slices.Contains(c.args, "lavfi") {
			n++
		}
	}
	return n
}

func newTestAssembler(t *testing.T, engine *fakeEngine, exec *fakeExecutor) Assembler {
	t.Helper()
	return New(engine, exec, defaultAudioConfig(), "en", t.TempDir(), logger.Nop())
}

func concatBasenames(list string) []string {
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(list), "\n") {
		path := strings.TrimSuffix(strings.TrimPrefix(line, "file '"), "'")
		names = append(names, filepath.Base(path))
	}
	return names
}

func TestAssemble(t *testing.T) {
	script := dialogue.Script{
		{Speaker: dialogue.SpeakerAlice, Text: "Hello there"},
		{Speaker: dialogue.SpeakerBob, Text: "Hi Alice, good to see you"},
		{Speaker: dialogue.SpeakerAlice, Text: "Likewise"},
	}

	engine := &fakeEngine{}
	exec := &fakeExecutor{}
	a := newTestAssembler(t, engine, exec)

	var stages []string
	result, err := a.Assemble(context.Background(), script, func(stage string, done, total int) {
		stages = append(stages, fmt.Sprintf("%s %d/%d", stage, done, total))
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	// Lines synthesized strictly in conversational order, fixed language.
	wantTexts := []string{"Hello there", "Hi Alice, good to see you", "Likewise"}
	if !slices.Equal(engine.texts, wantTexts) {
		t.Errorf("synthesized texts = %v, want %v", engine.texts, wantTexts)
	}
	if engine.lang != "en" {
		t.Errorf("language = %q, want en", engine.lang)
	}

	// Exported segment order: lead, 400 (first line), clips interleaved with
	// 800 turn pauses, trail.
	wantOrder := []string{
		"sil_1000.mp3", "sil_400.mp3", "clip_000.mp3",
		"sil_800.mp3", "clip_001.mp3",
		"sil_800.mp3", "clip_002.mp3",
		"sil_1000.mp3",
	}
	if got := concatBasenames(exec.concatList); !slices.Equal(got, wantOrder) {
		t.Errorf("concat order = %v, want %v", got, wantOrder)
	}

	// Silences are cached per duration: 1000, 400, 800 rendered once each.
	if got := exec.countLavfi(); got != 3 {
		t.Errorf("silence renders = %d, want 3", got)
	}

	// Total = 3600ms silence + 3 clips of 1200ms.
	if got, want := result.Timeline.TotalDuration(), 7200*time.Millisecond; got != want {
		t.Errorf("TotalDuration() = %v, want %v", got, want)
	}
	if got := result.Timeline.ClipCount(); got != 3 {
		t.Errorf("ClipCount() = %d, want 3", got)
	}

	if _, err := os.Stat(result.Path); err != nil {
		t.Errorf("output file missing: %v", err)
	}

	// All transients are gone; only the exported track remains.
	assertNoJobDirs(t, filepath.Dir(result.Path))

	wantStages := []string{
		"voicing Alice 1/3", "voicing Bob 2/3", "voicing Alice 3/3", "exporting 3/3",
	}
	if !slices.Equal(stages, wantStages) {
		t.Errorf("progress = %v, want %v", stages, wantStages)
	}
}

func TestAssembleSkipsEmptyUtterances(t *testing.T) {
	script := dialogue.Script{
		{Speaker: dialogue.SpeakerAlice, Text: "spoken"},
		{Speaker: dialogue.SpeakerBob, Text: ""},
	}

	engine := &fakeEngine{}
	a := newTestAssembler(t, engine, &fakeExecutor{})

	result, err := a.Assemble(context.Background(), script, nil)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(engine.texts) != 1 {
		t.Errorf("engine called %d times, want 1", len(engine.texts))
	}
	if got := result.Timeline.ClipCount(); got != 1 {
		t.Errorf("ClipCount() = %d, want 1", got)
	}
}

func TestAssembleSynthesisFailureCleansUp(t *testing.T) {
	script := dialogue.Script{
		{Speaker: dialogue.SpeakerAlice, Text: "fine"},
		{Speaker: dialogue.SpeakerBob, Text: "boom"},
	}

	engine := &fakeEngine{failOn: "boom"}
	exec := &fakeExecutor{}
	tempRoot := t.TempDir()
	a := New(engine, exec, defaultAudioConfig(), "en", tempRoot, logger.Nop())

	_, err := a.Assemble(context.Background(), script, nil)
	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("error = %v, want *AssemblyError", err)
	}

	assertNoJobDirs(t, tempRoot)
	assertNoOutputs(t, tempRoot)
}

func TestAssembleExportFailureCleansUp(t *testing.T) {
	script := dialogue.Script{{Speaker: dialogue.SpeakerAlice, Text: "hi"}}

	exec := &fakeExecutor{
		failWhen: func(name string, args []string) bool {
			return name == "ffmpeg" && slices.Contains(args, "concat")
		},
	}
	tempRoot := t.TempDir()
	a := New(&fakeEngine{}, exec, defaultAudioConfig(), "en", tempRoot, logger.Nop())

	_, err := a.Assemble(context.Background(), script, nil)
	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("error = %v, want *AssemblyError", err)
	}

	assertNoJobDirs(t, tempRoot)
	assertNoOutputs(t, tempRoot)
}

func TestAssembleCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tempRoot := t.TempDir()
	a := New(&fakeEngine{}, &fakeExecutor{}, defaultAudioConfig(), "en", tempRoot, logger.Nop())

	_, err := a.Assemble(ctx, dialogue.Script{{Speaker: dialogue.SpeakerAlice, Text: "hi"}}, nil)
	if err == nil {
		t.Fatal("Assemble() = nil error after cancellation")
	}
	assertNoJobDirs(t, tempRoot)
}

func assertNoJobDirs(t *testing.T, tempRoot string) {
	t.Helper()
	dirs, err := filepath.Glob(filepath.Join(tempRoot, "assemble-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 0 {
		t.Errorf("job dirs left behind: %v", dirs)
	}
}

func assertNoOutputs(t *testing.T, tempRoot string) {
	t.Helper()
	outs, err := filepath.Glob(filepath.Join(tempRoot, "conversation-*.mp3"))
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 0 {
		t.Errorf("partial outputs left behind: %v", outs)
	}
}
