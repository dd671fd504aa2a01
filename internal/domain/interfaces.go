package domain

import (
	"context"
	"time"
)

// Fetcher defines the interface for HTTP and file fetching
type Fetcher interface {
	// Get fetches content from an http(s) or file URL
	Get(ctx context.Context, url string) (*Response, error)
	// Close releases resources
	Close() error
}

// Geocoder defines the interface for resolving org references to coordinates
type Geocoder interface {
	// Geocode resolves a bookmark URI via the geocoding API
	Geocode(ctx context.Context, uri string) (*GeocodeResult, error)
	// Enabled reports whether the geocoder is configured with an API key
	Enabled() bool
}

// Cache defines the interface for content caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// Writer defines the interface for GPX output writing
type Writer interface {
	// Write serializes resolved points for a list and returns the file path
	Write(ctx context.Context, list *BookmarkList, points []ResolvedPoint) (string, error)
}
