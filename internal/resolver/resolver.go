package resolver

import (
	"context"
	"errors"

	"github.com/quantmind-br/ymaps2gpx/internal/domain"
	"github.com/quantmind-br/ymaps2gpx/internal/utils"
)

// Resolver turns bookmark entries into waypoints. Entries that cannot be
// resolved are skipped with a warning; one bad entry never aborts the batch.
type Resolver struct {
	geocoder domain.Geocoder
	logger   *utils.Logger
	progress bool
}

// Options contains options for creating a Resolver
type Options struct {
	Geocoder domain.Geocoder
	Logger   *utils.Logger
	Progress bool
}

// New creates a new Resolver
func New(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	return &Resolver{
		geocoder: opts.Geocoder,
		logger:   logger.WithComponent("resolver"),
		progress: opts.Progress,
	}
}

// Resolve resolves the list's entries in order. The returned slice holds at
// most one point per entry; skipped entries leave no gap.
func (r *Resolver) Resolve(ctx context.Context, list *domain.BookmarkList) ([]domain.ResolvedPoint, error) {
	points := make([]domain.ResolvedPoint, 0, len(list.Children))

	var bar interface{ Add(int) error }
	if r.progress {
		bar = utils.NewProgressBar(len(list.Children), utils.DescResolving)
	}

	for _, entry := range list.Children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		point, err := r.resolveEntry(ctx, entry)
		if err != nil {
			r.warn(entry, err)
		} else {
			points = append(points, *point)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return points, nil
}

// resolveEntry resolves a single bookmark entry
func (r *Resolver) resolveEntry(ctx context.Context, entry domain.Bookmark) (*domain.ResolvedPoint, error) {
	uri, err := domain.ParseBookmarkURI(entry.URI)
	if err != nil {
		return nil, err
	}

	switch uri.Kind {
	case domain.URIKindPin:
		return &domain.ResolvedPoint{
			Lat:     uri.Lat,
			Lon:     uri.Lon,
			Name:    entry.DisplayTitle(),
			Address: domain.DefaultAddress,
		}, nil

	case domain.URIKindOrg:
		result, err := r.geocode(ctx, uri)
		if err != nil {
			return nil, err
		}
		return &domain.ResolvedPoint{
			Lat:     result.Lat,
			Lon:     result.Lon,
			Name:    entry.DisplayTitle(),
			Address: result.Address,
		}, nil

	default:
		return nil, domain.ErrUnknownURIFormat
	}
}

func (r *Resolver) geocode(ctx context.Context, uri *domain.BookmarkURI) (*domain.GeocodeResult, error) {
	if r.geocoder == nil || !r.geocoder.Enabled() {
		return nil, domain.ErrMissingAPIKey
	}
	return r.geocoder.Geocode(ctx, uri.Raw)
}

// warn logs a skipped entry with an error-specific message
func (r *Resolver) warn(entry domain.Bookmark, err error) {
	event := r.logger.Warn().
		Str("uri", entry.URI).
		Str("title", entry.DisplayTitle())

	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		event.Msg("Geocoder API key not set, skipping org entry")
	case errors.Is(err, domain.ErrUnknownURIFormat):
		event.Msg("Unrecognized bookmark URI, skipping entry")
	default:
		event.Err(err).Msg("Failed to resolve entry, skipping")
	}
}
