package gpx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/ymaps2gpx/internal/domain"
	"github.com/quantmind-br/ymaps2gpx/internal/utils"
)

// Writer writes resolved bookmark lists to GPX files on disk
type Writer struct {
	directory string
	creator   string
	overwrite bool
	dryRun    bool
	logger    *utils.Logger
}

// WriterOptions contains options for creating a Writer
type WriterOptions struct {
	// Directory is the output directory; it must already exist
	Directory string

	// Creator is placed in the gpx root's creator attribute
	Creator string

	// Overwrite allows replacing an existing file with the same name
	Overwrite bool

	// DryRun renders the document but skips the disk write
	DryRun bool

	Logger *utils.Logger
}

// NewWriter creates a new Writer
func NewWriter(opts WriterOptions) *Writer {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	directory := opts.Directory
	if directory == "" {
		directory = "."
	}

	return &Writer{
		directory: directory,
		creator:   opts.Creator,
		overwrite: opts.Overwrite,
		dryRun:    opts.DryRun,
		logger:    logger.WithComponent("gpx"),
	}
}

// Filename derives the output file name from a list title. Spaces become
// underscores so the name survives shell-unquoted use.
func Filename(title string) string {
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultTitle
	}
	return strings.ReplaceAll(title, " ", "_") + ".gpx"
}

// Write renders the list as GPX and writes it into the output directory.
// It returns the path of the written file.
func (w *Writer) Write(ctx context.Context, list *domain.BookmarkList, points []domain.ResolvedPoint) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !utils.DirExists(w.directory) {
		return "", fmt.Errorf("%w: %s", domain.ErrOutputDirMissing, w.directory)
	}

	path := filepath.Join(w.directory, Filename(list.DisplayTitle()))

	if !w.overwrite {
		if _, err := os.Stat(path); err == nil {
			// The caller decides whether this is fatal; the path is still
			// reported so it can be named in the warning.
			return path, fmt.Errorf("%w: %s", domain.ErrOutputExists, path)
		}
	}

	doc := Build(list, points, w.creator)

	if w.dryRun {
		w.logger.Info().
			Str("path", path).
			Int("waypoints", len(points)).
			Msg("Dry run, skipping write")
		return path, nil
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	w.logger.Debug().
		Str("path", path).
		Int("waypoints", len(points)).
		Msg("Wrote GPX file")

	return path, nil
}
