package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/quantmind-br/ymaps2gpx/internal/cache"
	"github.com/quantmind-br/ymaps2gpx/internal/domain"
)

// Client fetches share pages and geocoder responses. HTTP requests go
// through a stealth TLS client; file:// URLs are read from disk.
type Client struct {
	tlsClient    tls_client.HttpClient
	userAgent    string
	retrier      *Retrier
	cache        domain.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	Timeout     time.Duration
	MaxRetries  int
	EnableCache bool
	CacheTTL    time.Duration
	Cache       domain.Cache
	UserAgent   string
	ProxyURL    string
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:     30 * time.Second,
		MaxRetries:  3,
		EnableCache: true,
		CacheTTL:    24 * time.Hour,
	}
}

// NewClient creates a new stealth HTTP client
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(opts.Timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithRandomTLSExtensionOrder(),
	}

	if opts.ProxyURL != "" {
		tlsOpts = append(tlsOpts, tls_client.WithProxyUrl(opts.ProxyURL))
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	retrier := NewRetrier(RetrierOptions{
		MaxRetries:      opts.MaxRetries,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	})

	return &Client{
		tlsClient:    tlsClient,
		userAgent:    opts.UserAgent,
		retrier:      retrier,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache,
		cacheTTL:     opts.CacheTTL,
	}, nil
}

// Get fetches content from an http(s) or file URL
func (c *Client) Get(ctx context.Context, rawURL string) (*domain.Response, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidURL, rawURL)
	}

	if parsed.Scheme == "file" {
		return c.readLocal(parsed, rawURL)
	}

	// Check cache first
	if c.cacheEnabled && c.cache != nil {
		cached, err := c.getFromCache(ctx, rawURL)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	var resp *domain.Response
	err = c.retrier.Retry(ctx, func() error {
		var reqErr error
		resp, reqErr = c.doRequest(ctx, rawURL)
		return reqErr
	})
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled && c.cache != nil && resp != nil {
		_ = c.cache.Set(ctx, cache.PageKey(rawURL), resp.Body, c.cacheTTL)
	}

	return resp, nil
}

// readLocal reads a file:// URL as UTF-8 text
func (c *Client) readLocal(u *url.URL, rawURL string) (*domain.Response, error) {
	path := u.Path
	// file:///C:/foo carries a leading slash before the drive letter
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && filepath.VolumeName(path[1:]) != "" {
		path = path[1:]
	}
	if u.Host != "" && u.Host != "localhost" {
		path = filepath.Join(u.Host, path)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFetchError(rawURL, 0, err)
	}

	decoded, err := DecodeBody(body, "")
	if err != nil {
		return nil, domain.NewFetchError(rawURL, 0, err)
	}

	return &domain.Response{
		StatusCode:  http.StatusOK,
		Body:        decoded,
		ContentType: "text/html; charset=utf-8",
		URL:         rawURL,
	}, nil
}

// doRequest performs the actual HTTP request
func (c *Client) doRequest(ctx context.Context, targetURL string) (*domain.Response, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range StealthHeaders(c.userAgent) {
		req.Header.Set(k, v)
	}

	resp, err := c.tlsClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{
			URL: targetURL,
			Err: fmt.Errorf("request failed: %w", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		fetchErr := &domain.FetchError{
			URL:        targetURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
		if ShouldRetryStatus(resp.StatusCode) {
			return nil, &domain.RetryableError{
				Err:        fetchErr,
				RetryAfter: int(ParseRetryAfter(resp.Header.Get("Retry-After")).Seconds()),
			}
		}
		return nil, fetchErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	decoded, err := DecodeBody(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Body:        decoded,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         targetURL,
	}, nil
}

// getFromCache retrieves a response from cache
func (c *Client) getFromCache(ctx context.Context, url string) (*domain.Response, error) {
	data, err := c.cache.Get(ctx, cache.PageKey(url))
	if err != nil {
		return nil, err
	}

	return &domain.Response{
		StatusCode:  http.StatusOK,
		Body:        data,
		ContentType: "text/html",
		URL:         url,
		FromCache:   true,
	}, nil
}

// Close releases client resources
func (c *Client) Close() error {
	return nil
}
