package transcript

import (
	"context"
	"fmt"
	"strings"
)

// Method selects where the transcript text comes from.
type Method string

const (
	MethodURL    Method = "url"
	MethodUpload Method = "upload"
	MethodPaste  Method = "paste"
)

// Source is one user-supplied transcript input.
type Source struct {
	Method Method
	URL    string
	Upload []byte
	Text   string
}

type Resolver struct {
	provider Provider
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve turns a Source into a single transcript string. URL sources fetch
// the caption track and join fragments with single spaces, preserving order.
// Whitespace-only results are rejected here so downstream generative calls
// never see an empty transcript.
func (r *Resolver) Resolve(ctx context.Context, src Source) (string, error) {
	var text string

	switch src.Method {
	case MethodURL:
		videoID, err := ExtractVideoID(src.URL)
		if err != nil {
			return "", err
		}
		fragments, err := r.provider.Fetch(ctx, videoID)
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, len(fragments))
		for _, f := range fragments {
			parts = append(parts, f.Text)
		}
		text = strings.Join(parts, " ")

	case MethodUpload:
		text = string(src.Upload)

	case MethodPaste:
		text = src.Text

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, src.Method)
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}
