package assembler

import (
	"time"

	"github.com/nguyentantai21042004/transcript-genie/internal/dialogue"
)

type Kind int

const (
	KindSilence Kind = iota
	KindClip
)

// Segment is one element of the output track: a fixed-length silence or a
// synthesized clip. Clip durations are unknown at planning time and get
// filled in during rendering (after voice shaping, which stretches them).
type Segment struct {
	Kind     Kind
	Duration time.Duration
	Speaker  dialogue.Speaker
	Text     string
	Path     string
}

// Timeline is the ordered sequence of segments constituting the final track.
// Built once by BuildPlan, immutable order from then on.
type Timeline []Segment

// Pauses holds the silence policy.
type Pauses struct {
	Lead     time.Duration
	Trail    time.Duration
	Turn     time.Duration // speaker change
	Continue time.Duration // same speaker, and before the first line
}

// BuildPlan lays out the track for a script: leading silence, then for every
// line a pause followed by its clip, then trailing silence. The pause is
// Turn only when the previous line had a different speaker; the first spoken
// line always gets Continue since there is no previous speaker yet. Lines
// with empty text are skipped entirely (no pause, no clip).
func BuildPlan(script dialogue.Script, p Pauses) Timeline {
	tl := Timeline{{Kind: KindSilence, Duration: p.Lead}}

	var prev dialogue.Speaker
	for _, line := range script {
		if line.Text == "" {
			continue
		}

		pause := p.Continue
		if prev != "" && prev != line.Speaker {
			pause = p.Turn
		}
		tl = append(tl,
			Segment{Kind: KindSilence, Duration: pause},
			Segment{Kind: KindClip, Speaker: line.Speaker, Text: line.Text},
		)
		prev = line.Speaker
	}

	return append(tl, Segment{Kind: KindSilence, Duration: p.Trail})
}

// ClipCount returns the number of speech segments.
func (t Timeline) ClipCount() int {
	n := 0
	for _, s := range t {
		if s.Kind == KindClip {
			n++
		}
	}
	return n
}

// SilenceTotal returns the summed duration of all silence segments.
func (t Timeline) SilenceTotal() time.Duration {
	var d time.Duration
	for _, s := range t {
		if s.Kind == KindSilence {
			d += s.Duration
		}
	}
	return d
}

// TotalDuration sums every segment. Meaningful once clips carry durations.
func (t Timeline) TotalDuration() time.Duration {
	var d time.Duration
	for _, s := range t {
		d += s.Duration
	}
	return d
}
