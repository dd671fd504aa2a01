package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/quantmind-br/ymaps2gpx/internal/domain"
)

// FakeFetcher serves canned responses for tests without network access.
// Routes are matched by URL prefix, longest prefix first.
type FakeFetcher struct {
	mu       sync.Mutex
	routes   map[string][]byte
	statuses map[string]int
	errs     map[string]error
	requests []string
}

// NewFakeFetcher returns an empty fake fetcher
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		routes:   make(map[string][]byte),
		statuses: make(map[string]int),
		errs:     make(map[string]error),
	}
}

// Respond registers a 200 response body for URLs starting with prefix
func (f *FakeFetcher) Respond(prefix string, body []byte) *FakeFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[prefix] = body
	return f
}

// Fail registers an error for URLs starting with prefix
func (f *FakeFetcher) Fail(prefix string, err error) *FakeFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[prefix] = err
	return f
}

// Requests returns the URLs fetched so far, in order
func (f *FakeFetcher) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// Get returns the canned response whose prefix matches the URL
func (f *FakeFetcher) Get(ctx context.Context, url string) (*domain.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, url)

	if err := f.match(f.errs, url); err != nil {
		return nil, err
	}

	var body []byte
	var found bool
	var bestLen int
	for prefix, b := range f.routes {
		if strings.HasPrefix(url, prefix) && len(prefix) > bestLen {
			body, found, bestLen = b, true, len(prefix)
		}
	}
	if !found {
		return nil, domain.NewFetchError(url, http.StatusNotFound, domain.ErrInvalidURL)
	}

	return &domain.Response{
		StatusCode:  http.StatusOK,
		Body:        body,
		ContentType: "text/html; charset=utf-8",
		URL:         url,
	}, nil
}

func (f *FakeFetcher) match(m map[string]error, url string) error {
	var best error
	var bestLen int
	for prefix, err := range m {
		if strings.HasPrefix(url, prefix) && len(prefix) > bestLen {
			best, bestLen = err, len(prefix)
		}
	}
	return best
}

// Close releases resources (no-op)
func (f *FakeFetcher) Close() error {
	return nil
}
