package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/ymaps2gpx/internal/cache"
	"github.com/quantmind-br/ymaps2gpx/internal/domain"
)

// Client resolves bookmark URIs to coordinates via the Yandex geocoder API
type Client struct {
	fetcher  domain.Fetcher
	apiKey   string
	baseURL  string
	language string
	cache    domain.Cache
	cacheTTL time.Duration
}

// ClientOptions contains options for creating a geocoder Client
type ClientOptions struct {
	Fetcher  domain.Fetcher
	APIKey   string
	BaseURL  string
	Language string

	// Cache stores resolved results keyed by bookmark URI, so repeated runs
	// against the same list do not burn geocoder quota. Optional.
	Cache    domain.Cache
	CacheTTL time.Duration
}

// NewClient creates a new geocoder client
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://geocode-maps.yandex.ru/v1/"
	}
	if opts.Language == "" {
		opts.Language = "ru_RU"
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}

	return &Client{
		fetcher:  opts.Fetcher,
		apiKey:   opts.APIKey,
		baseURL:  opts.BaseURL,
		language: opts.Language,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
	}
}

// Enabled reports whether the client is configured with an API key
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Geocode resolves a bookmark URI to coordinates and a formatted address.
// Returns ErrMissingAPIKey when no key is configured.
func (c *Client) Geocode(ctx context.Context, uri string) (*domain.GeocodeResult, error) {
	if !c.Enabled() {
		return nil, domain.ErrMissingAPIKey
	}

	if cached := c.fromCache(ctx, uri); cached != nil {
		return cached, nil
	}

	resp, err := c.fetcher.Get(ctx, c.requestURL(uri))
	if err != nil {
		return nil, domain.NewGeocodeError(uri, err)
	}

	result, err := parseResponse(resp.Body)
	if err != nil {
		return nil, domain.NewGeocodeError(uri, err)
	}

	c.toCache(ctx, uri, result)
	return result, nil
}

// fromCache returns a previously resolved result for the URI, or nil.
// The cache key is the bookmark URI, not the request URL, so the API key
// never feeds the key material.
func (c *Client) fromCache(ctx context.Context, uri string) *domain.GeocodeResult {
	if c.cache == nil {
		return nil
	}

	data, err := c.cache.Get(ctx, cache.GeoKey(uri))
	if err != nil {
		return nil
	}

	var result domain.GeocodeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func (c *Client) toCache(ctx context.Context, uri string, result *domain.GeocodeResult) {
	if c.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, cache.GeoKey(uri), data, c.cacheTTL)
}

// requestURL builds the geocoder request URL for a bookmark URI
func (c *Client) requestURL(uri string) string {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("uri", uri)
	q.Set("format", "json")
	q.Set("language", c.language)
	return c.baseURL + "?" + q.Encode()
}

// parseResponse walks the first feature of a geocoder response
func parseResponse(body []byte) (*domain.GeocodeResult, error) {
	var parsed geocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse geocoder JSON: %w", err)
	}

	members := parsed.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return nil, domain.ErrEmptyGeocoderResponse
	}

	obj := members[0].GeoObject

	lon, lat, err := parsePos(obj.Point.Pos)
	if err != nil {
		return nil, err
	}

	address := obj.MetaDataProperty.GeocoderMetaData.Text
	if address == "" {
		address = domain.DefaultAddress
	}

	return &domain.GeocodeResult{
		Lat:     lat,
		Lon:     lon,
		Address: address,
	}, nil
}

// parsePos parses the geocoder point position "<lon> <lat>"
func parsePos(pos string) (lon, lat float64, err error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed pos %q", pos)
	}

	lon, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pos longitude %q: %w", parts[0], err)
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pos latitude %q: %w", parts[1], err)
	}

	return lon, lat, nil
}
