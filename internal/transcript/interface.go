package transcript

import "context"

// Fragment is one timed caption snippet returned by a transcript provider.
type Fragment struct {
	Text     string
	Start    float64
	Duration float64
}

// Provider fetches the ordered caption fragments for a video.
type Provider interface {
	Fetch(ctx context.Context, videoID string) ([]Fragment, error)
}
