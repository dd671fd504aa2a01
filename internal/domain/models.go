package domain

// Default values for fields the share page may omit.
const (
	DefaultTitle   = "Untitled"
	DefaultAddress = "Address undetermined"
)

// BookmarkList represents a public bookmark list embedded in a share page
type BookmarkList struct {
	Title    string     `json:"title"`
	Children []Bookmark `json:"children"`
}

// Bookmark represents a single entry of a bookmark list
type Bookmark struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DisplayTitle returns the bookmark title or the default placeholder
func (b Bookmark) DisplayTitle() string {
	if b.Title == "" {
		return DefaultTitle
	}
	return b.Title
}

// DisplayTitle returns the list title or the default placeholder
func (l BookmarkList) DisplayTitle() string {
	if l.Title == "" {
		return DefaultTitle
	}
	return l.Title
}

// ResolvedPoint is a bookmark resolved to geographic coordinates
type ResolvedPoint struct {
	Lat     float64
	Lon     float64
	Name    string
	Address string
}

// GeocodeResult is the subset of a geocoder feature the pipeline consumes
type GeocodeResult struct {
	Lat     float64
	Lon     float64
	Address string
}

// Response represents an HTTP response
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
	URL         string
	FromCache   bool
}
