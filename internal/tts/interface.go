package tts

import "context"

// Engine synthesizes one utterance into encoded audio bytes (MP3).
// Fails on empty text; language is a fixed BCP-47 code like "en".
type Engine interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}
