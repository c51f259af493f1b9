package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPExtractor calls a Tika-style extraction endpoint: the document body is
// PUT to /tika with its content type, the response body is the plain text.
type HTTPExtractor struct {
	baseURL string
	client  *http.Client
}

func NewHTTPExtractor(baseURL string, timeout time.Duration) (*HTTPExtractor, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("extract: base url is required")
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPExtractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (e *HTTPExtractor) Extract(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, e.baseURL+"/tika", r)
	if err != nil {
		return "", fmt.Errorf("extract: build request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Accept", "text/plain")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("extract: extraction failed: %s", resp.Status)
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("extract: read response: %w", err)
	}
	return string(text), nil
}
