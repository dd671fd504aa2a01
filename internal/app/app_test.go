package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/ymaps2gpx/internal/app"
	"github.com/quantmind-br/ymaps2gpx/internal/cache"
	"github.com/quantmind-br/ymaps2gpx/internal/config"
	"github.com/quantmind-br/ymaps2gpx/internal/domain"
	"github.com/quantmind-br/ymaps2gpx/internal/gpx"
	"github.com/quantmind-br/ymaps2gpx/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pageURL      = "https://yandex.ru/maps/?bookmarks%5BpublicId%5D=abc123"
	geocoderBase = "https://geocode-maps.yandex.ru/v1/"
)

func sampleList() domain.BookmarkList {
	return domain.BookmarkList{
		Title: "My Spots",
		Children: []domain.Bookmark{
			{URI: "ymapsbm1://pin?ll=37.617698,55.755864", Title: "Point A"},
			{URI: "ymapsbm1://org?oid=101", Title: "Point B"},
		},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Directory = t.TempDir()
	cfg.Cache.Enabled = false
	cfg.Geocoder.APIKey = "test-key"
	return cfg
}

func newApp(t *testing.T, cfg *config.Config, f domain.Fetcher, opts app.Options) *app.App {
	t.Helper()
	opts.Config = cfg
	opts.Logger = testutil.NewTestLogger()
	opts.Fetcher = f
	a, err := app.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// TestApp_Run tests the full fetch-extract-resolve-write pipeline
func TestApp_Run(t *testing.T) {
	t.Run("converts a share page end to end", func(t *testing.T) {
		f := testutil.NewFakeFetcher().
			Respond(pageURL, testutil.SharePage(sampleList())).
			Respond(geocoderBase, testutil.GeocoderResponse(30.3, 59.9, "Санкт-Петербург, Невский проспект"))

		cfg := testConfig(t)
		a := newApp(t, cfg, f, app.Options{})

		summary, err := a.Run(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, "My Spots", summary.ListTitle)
		assert.Equal(t, 2, summary.Total)
		assert.Equal(t, 2, summary.Resolved)
		assert.Equal(t, 0, summary.Skipped)
		assert.True(t, summary.Wrote)
		assert.Equal(t, filepath.Join(cfg.Output.Directory, "My_Spots.gpx"), summary.OutputPath)

		data, err := os.ReadFile(summary.OutputPath)
		require.NoError(t, err)

		parsed, err := gpx.Parse(data)
		require.NoError(t, err)
		require.Len(t, parsed.Waypoints, 2)
		assert.Equal(t, "Point A", parsed.Waypoints[0].Name)
		assert.InDelta(t, 55.755864, parsed.Waypoints[0].Lat, 1e-9)
		assert.Equal(t, domain.DefaultAddress, parsed.Waypoints[0].Address)
		assert.Equal(t, "Point B", parsed.Waypoints[1].Name)
		assert.Equal(t, "Санкт-Петербург, Невский проспект", parsed.Waypoints[1].Address)
	})

	t.Run("missing output directory fails before any fetch", func(t *testing.T) {
		f := testutil.NewFakeFetcher()
		cfg := testConfig(t)
		cfg.Output.Directory = filepath.Join(t.TempDir(), "does-not-exist")
		a := newApp(t, cfg, f, app.Options{})

		_, err := a.Run(context.Background(), pageURL)
		assert.ErrorIs(t, err, domain.ErrOutputDirMissing)
		assert.Empty(t, f.Requests())
	})

	t.Run("empty bookmark list aborts", func(t *testing.T) {
		f := testutil.NewFakeFetcher().
			Respond(pageURL, testutil.SharePage(domain.BookmarkList{Title: "Empty"}))
		a := newApp(t, testConfig(t), f, app.Options{})

		_, err := a.Run(context.Background(), pageURL)
		assert.ErrorIs(t, err, domain.ErrEmptyBookmarkList)
	})

	t.Run("fetch failure aborts", func(t *testing.T) {
		f := testutil.NewFakeFetcher().
			Fail(pageURL, domain.NewFetchError(pageURL, 503, domain.ErrRateLimited))
		a := newApp(t, testConfig(t), f, app.Options{})

		_, err := a.Run(context.Background(), pageURL)
		var fetchErr *domain.FetchError
		assert.ErrorAs(t, err, &fetchErr)
	})

	t.Run("page without state block aborts", func(t *testing.T) {
		f := testutil.NewFakeFetcher().
			Respond(pageURL, []byte("<html><body>nothing here</body></html>"))
		a := newApp(t, testConfig(t), f, app.Options{})

		_, err := a.Run(context.Background(), pageURL)
		assert.ErrorIs(t, err, domain.ErrStateViewNotFound)
	})

	t.Run("unresolvable entries are skipped, not fatal", func(t *testing.T) {
		list := sampleList()
		list.Children = append(list.Children, domain.Bookmark{URI: "https://not-a-bookmark", Title: "Bad"})

		f := testutil.NewFakeFetcher().
			Respond(pageURL, testutil.SharePage(list)).
			Respond(geocoderBase, testutil.GeocoderResponse(30.3, 59.9, "addr"))
		a := newApp(t, testConfig(t), f, app.Options{})

		summary, err := a.Run(context.Background(), pageURL)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 2, summary.Resolved)
		assert.Equal(t, 1, summary.Skipped)
	})

	t.Run("single pin list written with verbatim coordinates", func(t *testing.T) {
		page := []byte(`<html><body><script type="application/json" class="state-view">` +
			`{"config":{"bookmarksPublicList":{"title":"My Spots","children":[` +
			`{"uri":"ymapsbm1://pin?ll=37.6,55.7","title":"Point A"}]}}}` +
			`</script></body></html>`)

		f := testutil.NewFakeFetcher().Respond(pageURL, page)
		cfg := testConfig(t)
		a := newApp(t, cfg, f, app.Options{})

		summary, err := a.Run(context.Background(), pageURL)
		require.NoError(t, err)
		assert.Equal(t, "My_Spots.gpx", filepath.Base(summary.OutputPath))

		data, err := os.ReadFile(summary.OutputPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `lat="55.7"`)
		assert.Contains(t, string(data), `lon="37.6"`)
		assert.Contains(t, string(data), "<name>Point A</name>")
	})

	t.Run("tilde output directory expands to the home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		require.NoError(t, os.Mkdir(filepath.Join(home, "tracks"), 0o755))

		list := domain.BookmarkList{
			Title:    "My Spots",
			Children: []domain.Bookmark{{URI: "ymapsbm1://pin?ll=1,2", Title: "P"}},
		}
		f := testutil.NewFakeFetcher().Respond(pageURL, testutil.SharePage(list))

		cfg := testConfig(t)
		cfg.Output.Directory = "~/tracks"
		a := newApp(t, cfg, f, app.Options{})

		summary, err := a.Run(context.Background(), pageURL)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "tracks", "My_Spots.gpx"), summary.OutputPath)

		_, err = os.Stat(summary.OutputPath)
		assert.NoError(t, err)
	})

	t.Run("existing output file is a warning, not a failure", func(t *testing.T) {
		f := testutil.NewFakeFetcher().
			Respond(pageURL, testutil.SharePage(sampleList())).
			Respond(geocoderBase, testutil.GeocoderResponse(30.3, 59.9, "addr"))

		cfg := testConfig(t)
		existing := filepath.Join(cfg.Output.Directory, "My_Spots.gpx")
		require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

		a := newApp(t, cfg, f, app.Options{})
		summary, err := a.Run(context.Background(), pageURL)
		require.NoError(t, err)
		assert.False(t, summary.Wrote)

		data, err := os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), data)
	})

	t.Run("dry run resolves but writes nothing", func(t *testing.T) {
		f := testutil.NewFakeFetcher().
			Respond(pageURL, testutil.SharePage(sampleList())).
			Respond(geocoderBase, testutil.GeocoderResponse(30.3, 59.9, "addr"))

		cfg := testConfig(t)
		cfg.Output.DryRun = true
		a := newApp(t, cfg, f, app.Options{})

		summary, err := a.Run(context.Background(), pageURL)
		require.NoError(t, err)
		assert.True(t, summary.DryRun)

		_, err = os.Stat(summary.OutputPath)
		assert.True(t, os.IsNotExist(err))
	})
}

// TestApp_GeocodeCache tests that geocoder results survive across runs
func TestApp_GeocodeCache(t *testing.T) {
	store, err := cache.NewBadgerCache(cache.Options{InMemory: true})
	require.NoError(t, err)

	f := testutil.NewFakeFetcher().
		Respond(pageURL, testutil.SharePage(sampleList())).
		Respond(geocoderBase, testutil.GeocoderResponse(30.3, 59.9, "addr"))

	cfg := testConfig(t)
	cfg.Output.Overwrite = true
	a := newApp(t, cfg, f, app.Options{Cache: store})

	_, err = a.Run(context.Background(), pageURL)
	require.NoError(t, err)
	_, err = a.Run(context.Background(), pageURL)
	require.NoError(t, err)

	geocodeCalls := 0
	for _, u := range f.Requests() {
		if len(u) >= len(geocoderBase) && u[:len(geocoderBase)] == geocoderBase {
			geocodeCalls++
		}
	}
	assert.Equal(t, 1, geocodeCalls)
}
