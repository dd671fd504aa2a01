package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/quantmind-br/ymaps2gpx/internal/domain"
)

// stateViewSelector matches the script block Yandex Maps embeds its page
// state into.
const stateViewSelector = `script.state-view[type="application/json"]`

// Extractor pulls the bookmark list out of a fetched share page
type Extractor struct{}

// New creates a new Extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract locates the state-view JSON block in the page and returns the
// public bookmark list it carries.
func (e *Extractor) Extract(pageURL string, page []byte) (*domain.BookmarkList, error) {
	list, err := e.extract(page)
	if err != nil {
		return nil, &domain.ExtractError{URL: pageURL, Err: err}
	}
	return list, nil
}

func (e *Extractor) extract(page []byte) (*domain.BookmarkList, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	sel := doc.Find(stateViewSelector).First()
	if sel.Length() == 0 {
		return nil, domain.ErrStateViewNotFound
	}

	raw := strings.TrimSpace(sel.Text())
	if raw == "" {
		return nil, domain.ErrStateViewNotFound
	}

	var state stateView
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("parse state JSON: %w", err)
	}

	if state.Config == nil {
		return nil, domain.ErrMissingConfig
	}
	if state.Config.BookmarksPublicList == nil {
		return nil, domain.ErrMissingBookmarksList
	}

	return state.Config.BookmarksPublicList, nil
}
