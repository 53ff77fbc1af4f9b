package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

const defaultTimedTextURL = "https://video.google.com/timedtext"

// Matches the 11-character id segment of watch and share URLs.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the video id out of a YouTube watch/share URL.
func ExtractVideoID(rawURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", ErrInvalidURL
	}
	return m[1], nil
}

type implProvider struct {
	baseURL  string
	language string
	client   *http.Client
	logger   logger.Logger
}

// NewProvider creates a Provider backed by YouTube's timedtext endpoint.
// baseURL overrides the endpoint for tests; empty means the real service.
func NewProvider(baseURL, language string, client *http.Client, log logger.Logger) Provider {
	if baseURL == "" {
		baseURL = defaultTimedTextURL
	}
	if language == "" {
		language = "en"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &implProvider{
		baseURL:  baseURL,
		language: language,
		client:   client,
		logger:   log,
	}
}

// timedTextDoc mirrors the timedtext XML structure.
type timedTextDoc struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedTextRow `xml:"text"`
}

type timedTextRow struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Body     string  `xml:",chardata"`
}

// Fetch downloads the caption track and returns its fragments in order.
func (p *implProvider) Fetch(ctx context.Context, videoID string) ([]Fragment, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", p.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Err: fmt.Errorf("caption service returned %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	if len(body) == 0 {
		return nil, &FetchError{Err: fmt.Errorf("no captions available for video %s", videoID)}
	}

	var doc timedTextDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("parse captions: %w", err)}
	}

	fragments := make([]Fragment, 0, len(doc.Texts))
	for _, row := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(row.Body))
		if text == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:     text,
			Start:    row.Start,
			Duration: row.Duration,
		})
	}

	if len(fragments) == 0 {
		return nil, &FetchError{Err: fmt.Errorf("no captions available for video %s", videoID)}
	}

	p.logger.Debug(ctx, "Fetched %d caption fragments for %s", len(fragments), videoID)
	return fragments, nil
}
