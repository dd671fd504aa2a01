package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// URIKind discriminates the recognized bookmark URI formats
type URIKind int

const (
	// URIKindPin is a direct coordinate URI: ymapsbm1://pin?ll=<lon>,<lat>
	URIKindPin URIKind = iota
	// URIKindOrg is an organization reference: ymapsbm1://org?oid=<id>
	URIKindOrg
)

// BookmarkScheme is the URI scheme Yandex Maps uses for bookmark entries
const BookmarkScheme = "ymapsbm1"

// BookmarkURI is the parsed form of a bookmark entry identifier.
// Exactly one of the variant payloads is populated, selected by Kind.
type BookmarkURI struct {
	Kind URIKind
	Raw  string

	// Pin payload
	Lon float64
	Lat float64

	// Org payload
	OID string
}

// String returns the original URI text
func (u *BookmarkURI) String() string {
	return u.Raw
}

// ParseBookmarkURI parses a bookmark entry identifier into its variant form.
// Returns ErrUnknownURIFormat for anything that is not a pin or org URI.
func ParseBookmarkURI(raw string) (*BookmarkURI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownURIFormat, raw)
	}

	if u.Scheme != BookmarkScheme {
		return nil, fmt.Errorf("%w: scheme %q", ErrUnknownURIFormat, u.Scheme)
	}

	switch u.Host {
	case "pin":
		return parsePinURI(u, raw)
	case "org":
		return parseOrgURI(u, raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownURIFormat, raw)
	}
}

// parsePinURI parses the ll query parameter. Yandex encodes coordinates
// longitude first: ll=<lon>,<lat>.
func parsePinURI(u *url.URL, raw string) (*BookmarkURI, error) {
	ll := u.Query().Get("ll")
	if ll == "" {
		return nil, fmt.Errorf("%w: missing ll parameter", ErrInvalidCoordinates)
	}

	parts := strings.Split(ll, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCoordinates, ll)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinates, parts[0])
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinates, parts[1])
	}

	return &BookmarkURI{Kind: URIKindPin, Raw: raw, Lon: lon, Lat: lat}, nil
}

func parseOrgURI(u *url.URL, raw string) (*BookmarkURI, error) {
	oid := u.Query().Get("oid")
	if oid == "" {
		return nil, fmt.Errorf("%w: missing oid parameter", ErrUnknownURIFormat)
	}
	return &BookmarkURI{Kind: URIKindOrg, Raw: raw, OID: oid}, nil
}
