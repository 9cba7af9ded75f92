package index

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kamusis/sitesearch/internal/search"
)

// DefaultFetchTimeout is the default timeout for index requests.
const DefaultFetchTimeout = 10 * time.Second

// maxIndexBytes bounds how much of a response body is read.
const maxIndexBytes = 64 << 20

var _ search.Source = (*Fetcher)(nil)

// Fetcher retrieves the index over HTTP with caching disabled.
type Fetcher struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for index requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient replaces the HTTP client. The client's own timeout applies.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a Fetcher for the index at url.
func NewFetcher(url string, opts ...Option) *Fetcher {
	f := &Fetcher{
		url:     url,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

// URL returns the index location.
func (f *Fetcher) URL() string {
	return f.url
}

// Pages implements search.Source.
func (f *Fetcher) Pages(ctx context.Context) ([]search.Page, error) {
	b, err := f.Raw(ctx)
	if err != nil {
		return nil, err
	}
	return decodeBytes(b)
}

// Raw returns the undecoded index body.
func (f *Fetcher) Raw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: f.url, StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexBytes))
	if err != nil {
		return nil, fmt.Errorf("cannot read index from %s: %w", f.url, err)
	}
	return b, nil
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Open returns a Fetcher for http(s) locations and a File otherwise.
func Open(location string, opts ...Option) (search.Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("index location is empty")
	}
	if IsRemote(location) {
		return NewFetcher(location, opts...), nil
	}
	return &File{Path: location}, nil
}
