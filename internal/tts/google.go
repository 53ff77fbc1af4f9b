package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

const defaultEndpoint = "https://translate.google.com/translate_tts"

// The unofficial endpoint rejects overly long q parameters, so utterances
// are split into chunks below this limit and the MP3 payloads concatenated.
const maxChunkLen = 200

type implEngine struct {
	endpoint string
	client   *http.Client
	logger   logger.Logger
}

// New creates an Engine backed by Google Translate's speech endpoint.
// endpoint overrides the URL for tests; empty means the real service.
func New(endpoint string, client *http.Client, log logger.Logger) Engine {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &implEngine{
		endpoint: endpoint,
		client:   client,
		logger:   log,
	}
}

// Synthesize fetches MP3 audio for the utterance. MP3 frames are
// self-contained, so chunk payloads concatenate into a valid stream.
func (e *implEngine) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty text")
	}
	if language == "" {
		language = "en"
	}

	var audio []byte
	for _, chunk := range splitUtterance(text, maxChunkLen) {
		data, err := e.fetchChunk(ctx, chunk, language)
		if err != nil {
			return nil, err
		}
		audio = append(audio, data...)
	}

	e.logger.Debug(ctx, "Synthesized %d chars into %d bytes", len(text), len(audio))
	return audio, nil
}

func (e *implEngine) fetchChunk(ctx context.Context, text, language string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", language)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts service returned %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// splitUtterance breaks text on word boundaries into chunks of at most limit
// bytes. A single word longer than the limit becomes its own chunk.
func splitUtterance(text string, limit int) []string {
	words := strings.Fields(text)
	var chunks []string
	var current strings.Builder

	for _, w := range words {
		if current.Len() > 0 && current.Len()+1+len(w) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(w)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
