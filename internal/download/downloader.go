package download

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/iexhist/internal/api"
)

// ErrNotAvailable reports that no capture is published for the requested
// date and feed (weekends, holidays, pre-listing days).
var ErrNotAvailable = errors.New("no capture published for date and feed")

// Config holds downloader settings.
type Config struct {
	Dir         string // Destination directory for capture files
	Concurrency int    // Parallel fetches in FetchRange
}

// Downloader finds and downloads HIST capture files.
type Downloader struct {
	cfg    Config
	client *api.Client
	http   *http.Client
	logger *slog.Logger
}

// New creates a Downloader delivering into cfg.Dir.
func New(cfg Config, client *api.Client, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Downloader{
		cfg:    cfg,
		client: client,
		// Capture files run to gigabytes; rely on the context for
		// cancellation instead of a client-wide timeout.
		http:   &http.Client{},
		logger: logger,
	}
}

// Fetch downloads the capture for one date and feed kind ("TOPS" or
// "DEEP") and returns the local path. Returns ErrNotAvailable when the day
// has no published capture for that feed.
func (d *Downloader) Fetch(ctx context.Context, date time.Time, feed string) (string, error) {
	entry, ok, err := d.client.FindHIST(ctx, date, feed)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%s %s: %w", date.Format("2006-01-02"), feed, ErrNotAvailable)
		}
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%s %s: %w", date.Format("2006-01-02"), feed, ErrNotAvailable)
	}

	if err := os.MkdirAll(d.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	dest := filepath.Join(d.cfg.Dir, entry.Filename())
	d.logger.Info("downloading capture",
		"date", entry.Date,
		"feed", entry.Feed,
		"size", entry.Size,
		"dest", dest,
	)

	if err := d.downloadTo(ctx, entry.Link, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// downloadTo streams url into a partial file next to dest and renames it
// into place when complete.
func (d *Downloader) downloadTo(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("download capture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &api.APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	// Unique partial name: FetchRange may download several files into the
	// same directory at once.
	partial := dest + ".partial-" + uuid.NewString()
	f, err := os.Create(partial)
	if err != nil {
		return fmt.Errorf("create partial file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(partial)
		return fmt.Errorf("write capture: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(partial)
		return fmt.Errorf("close partial file: %w", err)
	}
	if err := os.Rename(partial, dest); err != nil {
		os.Remove(partial)
		return fmt.Errorf("finalize capture: %w", err)
	}
	return nil
}

// FetchRange downloads every published capture for the feed between from
// and to inclusive, at most cfg.Concurrency at a time. Days with no
// published capture are skipped; any other failure aborts the whole range.
// Returns the local paths of the captures fetched.
func (d *Downloader) FetchRange(ctx context.Context, from, to time.Time, feed string) ([]string, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is before %s",
			to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Concurrency)

	var mu sync.Mutex
	var paths []string

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		day := day
		g.Go(func() error {
			path, err := d.Fetch(ctx, day, feed)
			if err != nil {
				if errors.Is(err, ErrNotAvailable) {
					d.logger.Warn("no capture for date, skipping",
						"date", day.Format("2006-01-02"),
						"feed", feed,
					)
					return nil
				}
				return err
			}
			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Decompress expands a gzipped capture into dst, optionally removing the
// compressed source afterwards.
func (d *Downloader) Decompress(src, dst string, removeSource bool) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open compressed capture: %w", err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("read gzip header: %w", err)
	}
	defer zr.Close()

	partial := dst + ".partial-" + uuid.NewString()
	out, err := os.Create(partial)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		os.Remove(partial)
		return fmt.Errorf("decompress capture: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(partial)
		return fmt.Errorf("close output file: %w", err)
	}
	if err := os.Rename(partial, dst); err != nil {
		os.Remove(partial)
		return fmt.Errorf("finalize output file: %w", err)
	}

	if removeSource {
		if err := os.Remove(src); err != nil {
			return fmt.Errorf("remove compressed source: %w", err)
		}
	}
	return nil
}
