package assembler

import (
	"time"

	"github.com/nguyentantai21042004/transcript-genie/internal/config"
	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
	"github.com/nguyentantai21042004/transcript-genie/internal/tts"
	"github.com/nguyentantai21042004/transcript-genie/pkg/executor"
)

type implAssembler struct {
	engine   tts.Engine
	exec     executor.Executor
	logger   logger.Logger
	shaper   *Shaper
	audio    config.AudioConfig
	language string
	tempRoot string
}

// New creates an Assembler. tempRoot hosts one scoped directory per job plus
// the exported tracks.
func New(engine tts.Engine, exec executor.Executor, audio config.AudioConfig, language, tempRoot string, log logger.Logger) Assembler {
	return &implAssembler{
		engine:   engine,
		exec:     exec,
		logger:   log,
		shaper:   NewShaper(audio),
		audio:    audio,
		language: language,
		tempRoot: tempRoot,
	}
}

func (a *implAssembler) pauses() Pauses {
	return Pauses{
		Lead:     time.Duration(a.audio.LeadSilenceMs) * time.Millisecond,
		Trail:    time.Duration(a.audio.TrailSilenceMs) * time.Millisecond,
		Turn:     time.Duration(a.audio.TurnPauseMs) * time.Millisecond,
		Continue: time.Duration(a.audio.ContinuePauseMs) * time.Millisecond,
	}
}
