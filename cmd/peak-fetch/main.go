// Command peak-fetch downloads every model file of a catalog collection into
// a local directory, spacing the requests like the site's bulk download.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Space-Banane/peakprinting/internal/catalog"
	"github.com/Space-Banane/peakprinting/internal/download"
	"github.com/Space-Banane/peakprinting/internal/observability"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := observability.NewLogger(os.Getenv("LOG_LEVEL"), true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peak-fetch: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, os.Args[1:], os.Stderr, logger); err != nil {
		if !errors.Is(err, errUsage) {
			logger.Error("fetch failed", zap.Error(err))
		}
		os.Exit(1)
	}
}

type options struct {
	collection  string
	dir         string
	catalogFile string
	stagger     time.Duration
}

func run(ctx context.Context, args []string, stderr io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("peak-fetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.collection, "collection", "", "collection id (required)")
	fs.StringVar(&opts.dir, "dir", "models", "output directory")
	fs.StringVar(&opts.catalogFile, "catalog", "", "catalog YAML file (default: built-in catalog)")
	fs.DurationVar(&opts.stagger, "stagger", download.DefaultStagger, "delay between two downloads")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if opts.collection == "" {
		fmt.Fprintln(stderr, "usage: peak-fetch -collection <id> [-dir models] [-catalog file.yaml]")
		return errUsage
	}
	return fetch(ctx, opts, download.NewFetcher(opts.dir), logger)
}

func fetch(ctx context.Context, opts options, f *download.Fetcher, logger *zap.Logger) error {
	var (
		cat *catalog.Catalog
		err error
	)
	if opts.catalogFile != "" {
		cat, err = catalog.LoadFile(opts.catalogFile)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return err
	}
	col, ok := cat.Collection(opts.collection)
	if !ok {
		var ids []string
		for _, c := range cat.Collections() {
			ids = append(ids, c.ID)
		}
		sort.Strings(ids)
		return fmt.Errorf("%w: collection %q (known: %v)", catalog.ErrNotFound, opts.collection, ids)
	}

	o := &download.Orchestrator{Stagger: opts.stagger}
	start := time.Now()
	err = o.Fetch(ctx, col, func(ctx context.Context, s download.Step) error {
		path, err := f.Save(ctx, s)
		if err != nil {
			return err
		}
		logger.Info("model saved",
			zap.String("model", s.ModelID),
			zap.String("path", path),
			zap.Int64("delay_ms", s.DelayMillis()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("collection %s: %w", col.ID, err)
	}
	logger.Info("collection fetched",
		zap.String("collection", col.ID),
		zap.Int("models", len(col.Models)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
