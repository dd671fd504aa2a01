package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited indicates rate limiting was encountered
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates a timeout occurred
	ErrTimeout = errors.New("timeout")

	// ErrInvalidURL indicates an invalid URL was provided
	ErrInvalidURL = errors.New("invalid URL")

	// ErrOutputDirMissing indicates the output directory does not exist
	ErrOutputDirMissing = errors.New("output directory does not exist")

	// ErrStateViewNotFound indicates the page has no state-view script block
	ErrStateViewNotFound = errors.New("state-view script block not found")

	// ErrMissingConfig indicates the state JSON has no config object
	ErrMissingConfig = errors.New("state JSON missing config")

	// ErrMissingBookmarksList indicates config has no bookmarksPublicList
	ErrMissingBookmarksList = errors.New("state JSON missing bookmarksPublicList")

	// ErrEmptyBookmarkList indicates the list has no children to convert
	ErrEmptyBookmarkList = errors.New("bookmark list has no entries")

	// ErrUnknownURIFormat indicates a bookmark URI matched neither pin nor org
	ErrUnknownURIFormat = errors.New("unknown bookmark URI format")

	// ErrInvalidCoordinates indicates a pin URI carried unparseable coordinates
	ErrInvalidCoordinates = errors.New("invalid pin coordinates")

	// ErrMissingAPIKey indicates an org lookup was requested without a geocoder key
	ErrMissingAPIKey = errors.New("geocoder API key not set")

	// ErrEmptyGeocoderResponse indicates the geocoder returned no features
	ErrEmptyGeocoderResponse = errors.New("geocoder returned no features")

	// ErrWriteFailed indicates writing output failed
	ErrWriteFailed = errors.New("write failed")

	// ErrOutputExists indicates the target GPX file already exists
	ErrOutputExists = errors.New("output file already exists")
)

// FetchError represents an error during fetching
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// RetryableError indicates an error that can be retried
type RetryableError struct {
	Err        error
	RetryAfter int // Seconds to wait before retry, 0 if unknown
}

func (e *RetryableError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("retryable error (retry after %ds): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case 429, 502, 503, 504:
			return true
		}
	}

	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}

// GeocodeError represents a failed geocoder lookup for one bookmark URI
type GeocodeError struct {
	URI string
	Err error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode failed for %s: %v", e.URI, e.Err)
}

func (e *GeocodeError) Unwrap() error {
	return e.Err
}

// NewGeocodeError creates a new GeocodeError
func NewGeocodeError(uri string, err error) *GeocodeError {
	return &GeocodeError{URI: uri, Err: err}
}

// ExtractError represents a failed state extraction with the URL it came from
type ExtractError struct {
	URL string
	Err error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract failed for %s: %v", e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}
