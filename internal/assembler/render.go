package assembler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// renderClip synthesizes one line, shapes it for its speaker, and fills the
// segment's Path and Duration. The raw synthesis buffer is deleted as soon
// as the shaped clip exists; a failed delete is logged, not fatal.
func (a *implAssembler) renderClip(ctx context.Context, jobDir string, idx int, seg *Segment) error {
	audio, err := a.engine.Synthesize(ctx, seg.Text, a.language)
	if err != nil {
		return fmt.Errorf("synthesize line %d: %w", idx, err)
	}

	rawPath := filepath.Join(jobDir, fmt.Sprintf("raw_%03d.mp3", idx))
	if err := os.WriteFile(rawPath, audio, 0644); err != nil {
		return fmt.Errorf("write raw clip %d: %w", idx, err)
	}

	shapedPath := filepath.Join(jobDir, fmt.Sprintf("clip_%03d.mp3", idx))
	chain := a.shaper.VariantFor(seg.Speaker).FilterChain(a.audio.SampleRate, a.fade())

	_, err = a.exec.Execute(ctx, "ffmpeg",
		"-y",
		"-i", rawPath,
		"-af", chain,
		"-ar", strconv.Itoa(a.audio.SampleRate),
		"-ac", "1",
		"-c:a", "libmp3lame",
		"-q:a", "2",
		shapedPath,
	)
	if err != nil {
		return fmt.Errorf("shape clip %d: %w", idx, err)
	}

	dur, err := a.probeDuration(ctx, shapedPath)
	if err != nil {
		return fmt.Errorf("probe clip %d: %w", idx, err)
	}

	if err := os.Remove(rawPath); err != nil {
		a.logger.Warn(ctx, "Failed to remove raw clip %s: %v", rawPath, err)
	}

	seg.Path = shapedPath
	seg.Duration = dur
	return nil
}

// silenceFile returns an MP3 of digital silence for the given duration,
// generating it on first use. Silences repeat across the timeline, so they
// are cached by duration within the job.
func (a *implAssembler) silenceFile(ctx context.Context, jobDir string, d time.Duration, cache map[time.Duration]string) (string, error) {
	if path, ok := cache[d]; ok {
		return path, nil
	}

	path := filepath.Join(jobDir, fmt.Sprintf("sil_%d.mp3", d.Milliseconds()))
	src := fmt.Sprintf("anullsrc=r=%d:cl=mono:d=%.3f", a.audio.SampleRate, d.Seconds())

	_, err := a.exec.Execute(ctx, "ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", src,
		"-c:a", "libmp3lame",
		"-q:a", "9",
		path,
	)
	if err != nil {
		return "", fmt.Errorf("render %s silence: %w", d, err)
	}

	cache[d] = path
	return path, nil
}

// probeOutput mirrors the ffprobe JSON shape.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (a *implAssembler) probeDuration(ctx context.Context, path string) (time.Duration, error) {
	out, err := a.exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return 0, err
	}

	var probe probeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("ffprobe JSON parse: %w", err)
	}

	sec, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration %q: %w", probe.Format.Duration, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

// export concatenates every segment file into the final track at maximum
// encoder quality.
func (a *implAssembler) export(ctx context.Context, jobDir string, tl Timeline, outPath string) error {
	var list strings.Builder
	for _, seg := range tl {
		// Concat demuxer list entry; paths are absolute and quote-free.
		fmt.Fprintf(&list, "file '%s'\n", seg.Path)
	}

	listPath := filepath.Join(jobDir, "concat.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	_, err := a.exec.Execute(ctx, "ffmpeg",
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:a", "libmp3lame",
		"-q:a", "0",
		outPath,
	)
	if err != nil {
		return fmt.Errorf("export track: %w", err)
	}
	return nil
}

func (a *implAssembler) fade() time.Duration {
	return time.Duration(a.audio.FadeMs) * time.Millisecond
}
