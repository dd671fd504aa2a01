package extractor

import "github.com/quantmind-br/ymaps2gpx/internal/domain"

// stateView mirrors the JSON payload of the share page's state-view block.
// Pointer fields distinguish an absent key from an empty object.
type stateView struct {
	Config *stateConfig `json:"config"`
}

type stateConfig struct {
	BookmarksPublicList *domain.BookmarkList `json:"bookmarksPublicList"`
}
