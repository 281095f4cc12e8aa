package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Space-Banane/peakprinting/internal/analytics"
	"github.com/Space-Banane/peakprinting/internal/carousel"
	"github.com/Space-Banane/peakprinting/internal/catalog"
	"github.com/Space-Banane/peakprinting/internal/config"
	"github.com/Space-Banane/peakprinting/internal/content"
	"github.com/Space-Banane/peakprinting/internal/download"
	"github.com/Space-Banane/peakprinting/internal/handlers"
	"github.com/Space-Banane/peakprinting/internal/observability"
	"github.com/Space-Banane/peakprinting/public"
	"github.com/Space-Banane/peakprinting/templates"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.Dev())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	umami := analytics.NewUmamiClient(cfg.Analytics.Endpoint, cfg.Analytics.WebsiteID,
		analytics.WithLogger(logger.Named("analytics")),
		analytics.WithHostname(hostOf(cfg.Site.BaseURL)),
	)
	defer umami.Wait()

	trackers := []analytics.Tracker{analytics.LogTracker{Logger: logger.Named("analytics")}}
	if umami != nil {
		trackers = append(trackers, umami)
	}
	srv, err := newServer(cfg, logger, analytics.Multi(trackers...))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          log.New(observability.NewPrintfAdapter(logger), "", 0),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", httpServer.Addr),
			zap.String("env", cfg.Site.Environment),
			zap.Bool("analytics", umami != nil))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// newServer loads the catalog, copy cards, templates and assets. Paths in
// cfg.Paths replace the compiled-in versions.
func newServer(cfg config.Config, logger *zap.Logger, tracker analytics.Tracker) (*server, error) {
	cat, err := loadCatalog(cfg.Paths.CatalogFile)
	if err != nil {
		return nil, err
	}
	cards, err := content.LoadCards(content.Embedded(), content.CardsDir)
	if err != nil {
		return nil, fmt.Errorf("load content cards: %w", err)
	}

	tmplFS := templates.FS()
	reload := false
	if cfg.Paths.TemplatesDir != "" {
		tmplFS = os.DirFS(cfg.Paths.TemplatesDir)
		reload = cfg.Dev()
	}
	rd, err := newRenderer(tmplFS, reload)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	var assets fs.FS
	if cfg.Paths.PublicDir != "" {
		assets = os.DirFS(cfg.Paths.PublicDir)
	} else if assets, err = public.AssetsFS(); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}

	return &server{
		site: handlers.Site{
			BaseURL: cfg.Site.BaseURL,
			Analytics: handlers.Analytics{
				ScriptURL: cfg.Analytics.ScriptURL,
				WebsiteID: cfg.Analytics.WebsiteID,
			},
			Dev: cfg.Dev(),
		},
		logger:    logger,
		render:    rd,
		assets:    assets,
		catalog:   cat,
		cards:     cards,
		tracker:   analytics.Or(tracker),
		hub:       carousel.NewHub(),
		downloads: download.New(),
	}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("load default catalog: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
