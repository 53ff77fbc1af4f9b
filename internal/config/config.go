package config

import "fmt"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	TTS     TTSConfig     `yaml:"tts"`
	Audio   AudioConfig   `yaml:"audio"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type GeminiConfig struct {
	Model           string  `yaml:"model"`
	RequestsPerMin  int     `yaml:"requests_per_min"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
	Temperature     float32 `yaml:"temperature"`
}

type TTSConfig struct {
	Endpoint string `yaml:"endpoint"`
	Language string `yaml:"language"`
}

// AudioConfig holds the timeline constants. All durations are in milliseconds.
type AudioConfig struct {
	SampleRate      int     `yaml:"sample_rate"`
	LeadSilenceMs   int     `yaml:"lead_silence_ms"`
	TrailSilenceMs  int     `yaml:"trail_silence_ms"`
	TurnPauseMs     int     `yaml:"turn_pause_ms"`
	ContinuePauseMs int     `yaml:"continue_pause_ms"`
	FadeMs          int     `yaml:"fade_ms"`
	BobRateFactor   float64 `yaml:"bob_rate_factor"`
	BobLowpassHz    int     `yaml:"bob_lowpass_hz"`
	AliceRateFactor float64 `yaml:"alice_rate_factor"`
	AliceHighpassHz int     `yaml:"alice_highpass_hz"`
}

type PathsConfig struct {
	Temp   string `yaml:"temp"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.RequestsPerMin == 0 {
		c.Gemini.RequestsPerMin = 30
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 4096
	}
	if c.TTS.Language == "" {
		c.TTS.Language = "en"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 24000
	}
	if c.Audio.LeadSilenceMs == 0 {
		c.Audio.LeadSilenceMs = 1000
	}
	if c.Audio.TrailSilenceMs == 0 {
		c.Audio.TrailSilenceMs = 1000
	}
	if c.Audio.TurnPauseMs == 0 {
		c.Audio.TurnPauseMs = 800
	}
	if c.Audio.ContinuePauseMs == 0 {
		c.Audio.ContinuePauseMs = 400
	}
	if c.Audio.FadeMs == 0 {
		c.Audio.FadeMs = 50
	}
	if c.Audio.BobRateFactor == 0 {
		c.Audio.BobRateFactor = 0.85
	}
	if c.Audio.BobLowpassHz == 0 {
		c.Audio.BobLowpassHz = 3000
	}
	if c.Audio.AliceRateFactor == 0 {
		c.Audio.AliceRateFactor = 1.15
	}
	if c.Audio.AliceHighpassHz == 0 {
		c.Audio.AliceHighpassHz = 1000
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}

	if c.Audio.BobRateFactor <= 0 || c.Audio.AliceRateFactor <= 0 {
		return fmt.Errorf("audio rate factors must be positive")
	}
	if c.Audio.TurnPauseMs < c.Audio.ContinuePauseMs {
		return fmt.Errorf("audio.turn_pause_ms must be >= audio.continue_pause_ms")
	}
	return nil
}
