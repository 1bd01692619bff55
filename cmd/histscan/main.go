// histscan decodes an IEX HIST capture file and reports what it finds.
// Usage: go run ./cmd/histscan -file 20180127_IEXTP1_TOPS1.6.pcap.gz
//
// By default every message is counted; -kinds limits decoding output to a
// comma-separated list of message kinds (e.g. "TradeReport,QuoteUpdate").
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rickgao/iexhist/internal/model"
	"github.com/rickgao/iexhist/internal/tp"
	"github.com/rickgao/iexhist/internal/version"
)

func main() {
	file := flag.String("file", "", "path to HIST capture file (.pcap or .pcap.gz)")
	feedName := flag.String("feed", "TOPS", "feed kind: TOPS or DEEP")
	versionName := flag.String("version", "", "protocol version (1.0, 1.5, 1.6); default per feed")
	kindsArg := flag.String("kinds", "", "comma-separated message kinds to decode; empty for all")
	printEach := flag.Bool("print", false, "print every decoded message")
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

	if *file == "" {
		logger.Error("missing required -file flag")
		os.Exit(2)
	}

	opts, err := parserOptions(*feedName, *versionName)
	if err != nil {
		logger.Error("invalid flags", "error", err)
		os.Exit(2)
	}

	allowed, err := parseKinds(*kindsArg)
	if err != nil {
		logger.Error("invalid -kinds", "error", err)
		os.Exit(2)
	}

	logger.Info("scanning capture",
		"version", version.Version,
		"file", *file,
		"feed", *feedName,
	)

	p, err := tp.Open(*file, opts...)
	if err != nil {
		logger.Error("failed to open capture", "error", err)
		os.Exit(1)
	}
	defer p.Close()

	logger.Info("session locked",
		"session_id", fmt.Sprintf("%x", p.SessionID()),
		"protocol_version", p.Version().String(),
	)

	counts := make(map[model.Kind]int64)
	var total int64
	start := time.Now()

	for {
		msg, err := p.Next(allowed...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			logger.Error("decode failed", "error", err, "bytes_read", p.BytesRead())
			os.Exit(1)
		}
		counts[msg.Kind()]++
		total++
		if *printEach {
			fmt.Printf("%s %s %+v\n", msg.Time().Format(time.RFC3339Nano), msg.Kind(), msg)
		}
	}

	elapsed := time.Since(start)
	logger.Info("capture exhausted",
		"messages", total,
		"bytes_read", p.BytesRead(),
		"elapsed", elapsed.Round(time.Millisecond),
		"rate_per_sec", int64(float64(total)/elapsed.Seconds()),
	)

	kinds := make([]model.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return counts[kinds[i]] > counts[kinds[j]] })
	for _, k := range kinds {
		fmt.Printf("%-22s %12d\n", k, counts[k])
	}
}

func parserOptions(feedName, versionName string) ([]tp.Option, error) {
	feed, err := tp.ParseFeed(feedName)
	if err != nil {
		return nil, err
	}
	opts := []tp.Option{tp.WithFeed(feed)}
	if versionName != "" {
		v, err := tp.ParseVersion(versionName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tp.WithVersion(v))
	}
	return opts, nil
}

func parseKinds(arg string) ([]model.Kind, error) {
	if arg == "" {
		return nil, nil
	}
	var kinds []model.Kind
	for _, name := range strings.Split(arg, ",") {
		k, ok := model.KindFromName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown message kind %q", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
