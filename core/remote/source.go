package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Payload is one complete translation bundle for a single language as
// returned by the provider.
type Payload struct {
	Lang       string            `json:"lang"`
	Version    string            `json:"version"`
	Count      int               `json:"count"`
	Namespaces []string          `json:"namespaces"`
	Bundle     map[string]string `json:"bundle"`
}

// Source fetches the current bundle for a language. Implementations must
// classify failures with the package sentinel errors and must not retry.
type Source interface {
	Fetch(ctx context.Context, lang string) (*Payload, error)
}

// HTTPSource fetches bundles from an HTTP endpoint. The request URL is the
// base URL with the language code appended as the final path segment.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient sets a custom HTTP client, e.g. to adjust the timeout or
// add instrumentation.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the per-request timeout on the source's HTTP client.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.client.Timeout = timeout
		}
	}
}

// NewHTTPSource creates a Source fetching from the given base URL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) (*HTTPSource, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	source := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(source)
	}
	return source, nil
}

// Fetch retrieves and validates the bundle for a language.
func (s *HTTPSource) Fetch(ctx context.Context, lang string) (*Payload, error) {
	if lang == "" {
		return nil, errors.Join(ErrMalformedPayload, errors.New("language is required"))
	}

	endpoint := s.baseURL + "/" + url.PathEscape(lang)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrNetworkUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Join(ErrRemoteRejected, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}

	if err := validate(&payload, lang); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	return &payload, nil
}

// validate rejects payloads that decoded but do not describe a usable
// bundle. Anything that fails here is treated the same as unparseable JSON.
func validate(payload *Payload, requested string) error {
	if payload.Bundle == nil {
		return errors.New("missing bundle field")
	}
	if payload.Lang != "" && payload.Lang != requested {
		return fmt.Errorf("payload language %q does not match requested %q", payload.Lang, requested)
	}
	if payload.Count > 0 && payload.Count != len(payload.Bundle) {
		return fmt.Errorf("declared count %d does not match %d bundle entries", payload.Count, len(payload.Bundle))
	}
	return nil
}

var _ Source = (*HTTPSource)(nil)
