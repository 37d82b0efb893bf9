package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.quotable.io"

	randomEndpoint      = "/random"
	maxResponseBodySize = 1 << 20
)

// Fetcher retrieves random quotes from a quotable-compatible provider.
type Fetcher struct {
	baseURL string
	hc      *http.Client
	intn    func(n int) int
}

type Option func(*Fetcher)

// WithBaseURL overrides the provider host. No trailing slash required.
func WithBaseURL(baseURL string) Option {
	return func(f *Fetcher) { f.baseURL = baseURL }
}

// WithHTTPClient installs a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) { f.hc = hc }
}

// WithTimeout sets a timeout on the default client. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.hc = &http.Client{Timeout: d} }
}

// WithIntn replaces the source used to pick a fallback. intn must return a
// value in [0, n).
func WithIntn(intn func(n int) int) Option {
	return func(f *Fetcher) { f.intn = intn }
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{baseURL: DefaultBaseURL, hc: &http.Client{}, intn: rand.IntN}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.hc == nil {
		f.hc = &http.Client{}
	}
	if f.intn == nil {
		f.intn = rand.IntN
	}
	f.baseURL = strings.TrimRight(strings.TrimSpace(f.baseURL), "/")
	if f.baseURL == "" {
		f.baseURL = DefaultBaseURL
	}
	return f
}

type randomResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Fetch issues a single request for a random quote. It never retries.
func (f *Fetcher) Fetch(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+randomEndpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.hc.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Quote{}, fmt.Errorf("quote: provider returned %s", resp.Status)
	}
	var body randomResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize)).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("quote: decode response: %w", err)
	}
	return Quote{Text: body.Content, Author: body.Author}, nil
}

// Fallback picks one of Fallbacks uniformly at random.
func (f *Fetcher) Fallback() Quote {
	return Fallbacks[f.intn(len(Fallbacks))]
}
