// histfetch downloads IEX HIST capture files from the IEX REST API.
// Usage:
//
//	go run ./cmd/histfetch -date 2018-01-27
//	go run ./cmd/histfetch -from 2018-01-22 -to 2018-01-26 -feed DEEP
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rickgao/iexhist/internal/api"
	"github.com/rickgao/iexhist/internal/config"
	"github.com/rickgao/iexhist/internal/download"
	"github.com/rickgao/iexhist/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	dateArg := flag.String("date", "", "single capture date (YYYY-MM-DD)")
	fromArg := flag.String("from", "", "range start date (YYYY-MM-DD)")
	toArg := flag.String("to", "", "range end date (YYYY-MM-DD)")
	feedArg := flag.String("feed", "", "feed kind: TOPS or DEEP (default from config)")
	dirArg := flag.String("dir", "", "destination directory (default from config)")
	decompress := flag.Bool("decompress", false, "expand .gz after download")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting histfetch",
		"version", version.Version,
		"commit", version.Commit,
	)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *feedArg != "" {
		cfg.Parser.Feed = strings.ToUpper(*feedArg)
	}
	if *dirArg != "" {
		cfg.Download.Dir = *dirArg
	}
	if *decompress {
		cfg.Download.Decompress = true
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	from, to, err := resolveDates(*dateArg, *fromArg, *toArg)
	if err != nil {
		logger.Error("invalid dates", "error", err)
		os.Exit(2)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
		api.WithLogger(logger),
	)
	dl := download.New(download.Config{
		Dir:         cfg.Download.Dir,
		Concurrency: cfg.Download.Concurrency,
	}, client, logger)

	paths, err := dl.FetchRange(ctx, from, to, cfg.Parser.Feed)
	if err != nil {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Warn("no captures published in range",
			"from", from.Format("2006-01-02"),
			"to", to.Format("2006-01-02"),
			"feed", cfg.Parser.Feed,
		)
		return
	}

	for _, path := range paths {
		if cfg.Download.Decompress && strings.HasSuffix(path, ".gz") {
			dst := strings.TrimSuffix(path, ".gz")
			if err := dl.Decompress(path, dst, true); err != nil {
				logger.Error("decompress failed", "path", path, "error", err)
				os.Exit(1)
			}
			path = dst
		}
		logger.Info("capture ready", "path", path)
	}
	logger.Info("done", "captures", len(paths))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}

// resolveDates turns the -date / -from / -to flags into an inclusive range.
func resolveDates(date, from, to string) (time.Time, time.Time, error) {
	const layout = "2006-01-02"
	switch {
	case date != "":
		d, err := time.Parse(layout, date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return d, d, nil
	case from != "" && to != "":
		f, err := time.Parse(layout, from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		t, err := time.Parse(layout, to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return f, t, nil
	}
	return time.Time{}, time.Time{}, errNoDates
}

var errNoDates = errors.New("either -date or both -from and -to are required")
