package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantmind-br/ymaps2gpx/internal/cache"
	"github.com/quantmind-br/ymaps2gpx/internal/config"
	"github.com/quantmind-br/ymaps2gpx/internal/domain"
	"github.com/quantmind-br/ymaps2gpx/internal/extractor"
	"github.com/quantmind-br/ymaps2gpx/internal/fetcher"
	"github.com/quantmind-br/ymaps2gpx/internal/geocoder"
	"github.com/quantmind-br/ymaps2gpx/internal/gpx"
	"github.com/quantmind-br/ymaps2gpx/internal/resolver"
	"github.com/quantmind-br/ymaps2gpx/internal/utils"
)

// App wires the fetch, extract, resolve and write stages together
type App struct {
	cfg       *config.Config
	logger    *utils.Logger
	fetcher   domain.Fetcher
	cache     domain.Cache
	extractor *extractor.Extractor
	resolver  *resolver.Resolver
	writer    domain.Writer
}

// Options contains options for creating an App
type Options struct {
	Config *config.Config
	Logger *utils.Logger

	// RefreshCache drops all cached pages and geocoder results before the run
	RefreshCache bool

	// Progress enables the terminal progress bar during resolution
	Progress bool

	// Fetcher overrides the default stealth HTTP client. Used in tests.
	Fetcher domain.Fetcher

	// Cache overrides the default on-disk cache. Used in tests.
	Cache domain.Cache
}

// Summary describes a completed conversion run
type Summary struct {
	ListTitle  string
	Total      int
	Resolved   int
	Skipped    int
	OutputPath string
	DryRun     bool

	// Wrote is false when the file was not written: dry run, or the
	// target already exists and overwriting is off.
	Wrote bool
}

// New creates an App from configuration
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	// Paths from a config file may use ~ shorthand
	cfg.Output.Directory = utils.ExpandPath(cfg.Output.Directory)
	cfg.Cache.Directory = utils.ExpandPath(cfg.Cache.Directory)

	store := opts.Cache
	if store == nil && cfg.Cache.Enabled {
		dir := cfg.Cache.Directory
		if dir == "" {
			dir = config.CacheDir()
		}

		var err error
		store, err = cache.NewBadgerCache(cache.Options{Directory: dir})
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
	}

	if opts.RefreshCache && store != nil {
		if err := clearCache(store); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear cache")
		}
	}

	httpFetcher := opts.Fetcher
	if httpFetcher == nil {
		client, err := fetcher.NewClient(fetcher.ClientOptions{
			Timeout:     cfg.Fetch.Timeout,
			MaxRetries:  cfg.Fetch.MaxRetries,
			UserAgent:   cfg.Fetch.UserAgent,
			ProxyURL:    cfg.Fetch.ProxyURL,
			EnableCache: cfg.Cache.Enabled,
			CacheTTL:    cfg.Cache.TTL,
			Cache:       store,
		})
		if err != nil {
			return nil, err
		}
		httpFetcher = client
	}

	geo := geocoder.NewClient(geocoder.ClientOptions{
		Fetcher:  httpFetcher,
		APIKey:   cfg.Geocoder.APIKey,
		BaseURL:  cfg.Geocoder.BaseURL,
		Language: cfg.Geocoder.Language,
		Cache:    store,
		CacheTTL: cfg.Cache.TTL,
	})

	return &App{
		cfg:       cfg,
		logger:    logger.WithComponent("app"),
		fetcher:   httpFetcher,
		cache:     store,
		extractor: extractor.New(),
		resolver: resolver.New(resolver.Options{
			Geocoder: geo,
			Logger:   logger,
			Progress: opts.Progress,
		}),
		writer: gpx.NewWriter(gpx.WriterOptions{
			Directory: cfg.Output.Directory,
			Creator:   cfg.Output.Creator,
			Overwrite: cfg.Output.Overwrite,
			DryRun:    cfg.Output.DryRun,
			Logger:    logger,
		}),
	}, nil
}

// Run converts the share page at pageURL into a GPX file.
// The output directory is checked before any network traffic, so a typo'd
// path fails fast instead of after a full fetch-and-geocode pass.
func (a *App) Run(ctx context.Context, pageURL string) (*Summary, error) {
	if !utils.DirExists(a.cfg.Output.Directory) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOutputDirMissing, a.cfg.Output.Directory)
	}

	log := a.logger.WithURL(pageURL)
	log.Info().Msg("Fetching share page")

	resp, err := a.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if resp.FromCache {
		log.Debug().Msg("Share page served from cache")
	}

	list, err := a.extractor.Extract(pageURL, resp.Body)
	if err != nil {
		return nil, err
	}
	if len(list.Children) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyBookmarkList, list.DisplayTitle())
	}

	a.logger.Info().
		Str("title", list.DisplayTitle()).
		Int("entries", len(list.Children)).
		Msg("Extracted bookmark list")

	points, err := a.resolver.Resolve(ctx, list)
	if err != nil {
		return nil, err
	}

	wrote := !a.cfg.Output.DryRun
	path, err := a.writer.Write(ctx, list, points)
	if err != nil {
		// An existing target is a warning, not a failure
		if !errors.Is(err, domain.ErrOutputExists) {
			return nil, err
		}
		a.logger.Warn().Str("path", path).Msg("Output file exists, skipping write (use --force to overwrite)")
		wrote = false
	}

	summary := &Summary{
		ListTitle:  list.DisplayTitle(),
		Total:      len(list.Children),
		Resolved:   len(points),
		Skipped:    len(list.Children) - len(points),
		OutputPath: path,
		DryRun:     a.cfg.Output.DryRun,
		Wrote:      wrote,
	}

	a.logger.Info().
		Str("path", summary.OutputPath).
		Int("resolved", summary.Resolved).
		Int("skipped", summary.Skipped).
		Bool("wrote", summary.Wrote).
		Msg("Conversion finished")

	return summary, nil
}

// Close releases the HTTP client and the cache
func (a *App) Close() error {
	var firstErr error

	if a.fetcher != nil {
		if err := a.fetcher.Close(); err != nil {
			firstErr = err
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// clearCache drops all cached entries when the store supports it
func clearCache(store domain.Cache) error {
	type clearer interface{ Clear() error }
	if c, ok := store.(clearer); ok {
		return c.Clear()
	}
	return nil
}
