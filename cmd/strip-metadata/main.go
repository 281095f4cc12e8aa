// Command strip-metadata removes EXIF, GPS and other metadata from images by
// re-encoding their pixels.
//
//	strip-metadata photo.jpg                 writes photo_clean.jpg
//	strip-metadata -o out.jpg photo.jpg
//	strip-metadata -d ./images               writes ./images/cleaned/...
//	strip-metadata -d ./images -o ./clean -q 90
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Space-Banane/peakprinting/internal/imageclean"
	"github.com/Space-Banane/peakprinting/internal/observability"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := observability.NewLogger(os.Getenv("LOG_LEVEL"), true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "strip-metadata: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, os.Args[1:], os.Stderr, logger); err != nil {
		if !errors.Is(err, errUsage) {
			logger.Error("strip metadata failed", zap.Error(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("strip-metadata", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dir     string
		output  string
		quality int
	)
	fs.StringVar(&dir, "d", "", "clean every image in this directory")
	fs.StringVar(&output, "o", "", "output file or directory")
	fs.IntVar(&quality, "q", imageclean.DefaultQuality, "JPEG quality (1-100)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	switch {
	case dir != "" && fs.NArg() == 0:
		return cleanDir(ctx, dir, output, quality, logger)
	case dir == "" && fs.NArg() == 1:
		return cleanFile(fs.Arg(0), output, quality, logger)
	default:
		fmt.Fprintln(stderr, "usage: strip-metadata [-o output] [-q quality] <file> | -d <directory>")
		return errUsage
	}
}

func cleanFile(src, dst string, quality int, logger *zap.Logger) error {
	if !imageclean.Supported(src) {
		return fmt.Errorf("%s: %w", src, imageclean.ErrUnsupported)
	}
	out, err := imageclean.Clean(src, dst, quality)
	if err != nil {
		return err
	}
	logger.Info("image cleaned", zap.String("src", src), zap.String("dst", out))
	return nil
}

func cleanDir(ctx context.Context, src, dst string, quality int, logger *zap.Logger) error {
	failed := 0
	n, err := imageclean.CleanDir(src, dst, quality, func(r imageclean.Result) {
		if r.Err != nil {
			failed++
			logger.Warn("image skipped", zap.String("src", r.Src), zap.Error(r.Err))
			return
		}
		logger.Debug("image cleaned", zap.String("src", r.Src), zap.String("dst", r.Dst))
	})
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	logger.Info("directory cleaned", zap.String("dir", src), zap.Int("cleaned", n), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, n+failed)
	}
	return nil
}
