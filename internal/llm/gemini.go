package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GenerateText sends the prompt to Gemini and returns the completion text.
// Rotates API keys on 429 / quota errors, trying each configured key once.
func (g *implGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("no API key configured")}
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", &GenerationError{Err: err}
		}
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIdx := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		cfg := &genai.GenerateContentConfig{}
		if g.maxOutputTokens > 0 {
			cfg.MaxOutputTokens = g.maxOutputTokens
		}
		if g.temperature > 0 {
			cfg.Temperature = genai.Ptr(g.temperature)
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", &GenerationError{Err: fmt.Errorf("generate content: %w", err)}
		}

		text := collectText(result)
		if text == "" {
			return "", &GenerationError{Err: fmt.Errorf("empty response from Gemini")}
		}
		return text, nil
	}

	return "", &GenerationError{Err: fmt.Errorf("all API keys exhausted: %w", lastErr)}
}

func (g *implGenerator) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *implGenerator) rotateKey() {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	g.mu.Unlock()
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func collectText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}
