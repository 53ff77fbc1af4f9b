package assembler

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/transcript-genie/internal/config"
	"github.com/nguyentantai21042004/transcript-genie/internal/dialogue"
)

// Variant is one deterministic voice-shaping profile. Both speakers share a
// single synthesis voice; the variants differentiate them by pitch/tempo
// (sample-rate reinterpretation) and timbre (a one-sided frequency filter).
type Variant struct {
	Name       string
	RateFactor float64
	Filter     string // "lowpass" or "highpass"
	CutoffHz   int
}

type Shaper struct {
	bob   Variant
	alice Variant
}

func NewShaper(cfg config.AudioConfig) *Shaper {
	return &Shaper{
		bob: Variant{
			Name:       "bob",
			RateFactor: cfg.BobRateFactor,
			Filter:     "lowpass",
			CutoffHz:   cfg.BobLowpassHz,
		},
		alice: Variant{
			Name:       "alice",
			RateFactor: cfg.AliceRateFactor,
			Filter:     "highpass",
			CutoffHz:   cfg.AliceHighpassHz,
		},
	}
}

// VariantFor maps a speaker label to its voice profile. The compare is
// case-insensitive on "bob"; every other label, recognized or not, gets the
// Alice profile. The mapping is fixed per label so a speaker sounds the same
// on every line.
func (s *Shaper) VariantFor(speaker dialogue.Speaker) Variant {
	if strings.EqualFold(string(speaker), "bob") {
		return s.bob
	}
	return s.alice
}

// FilterChain builds the ffmpeg -af chain for this variant: reinterpret the
// samples at the shifted rate, resample back to the nominal rate (this
// stretches or compresses playback, which is kept, matching the product's
// established sound), apply the timbre filter, then fade both edges. The
// fade-out runs on the reversed stream so the chain needs no clip duration.
func (v Variant) FilterChain(sampleRate int, fade time.Duration) string {
	fadeSec := fade.Seconds()
	return fmt.Sprintf(
		"asetrate=%d*%g,aresample=%d,%s=f=%d,afade=t=in:d=%.3f,areverse,afade=t=in:d=%.3f,areverse",
		sampleRate, v.RateFactor, sampleRate, v.Filter, v.CutoffHz, fadeSec, fadeSec,
	)
}
