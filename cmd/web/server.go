package main

import (
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Space-Banane/peakprinting/internal/analytics"
	"github.com/Space-Banane/peakprinting/internal/carousel"
	"github.com/Space-Banane/peakprinting/internal/catalog"
	"github.com/Space-Banane/peakprinting/internal/content"
	"github.com/Space-Banane/peakprinting/internal/download"
	"github.com/Space-Banane/peakprinting/internal/handlers"
	mw "github.com/Space-Banane/peakprinting/internal/middleware"
	"github.com/Space-Banane/peakprinting/internal/seo"
)

const requestTimeout = 30 * time.Second

// server holds everything the handlers share.
type server struct {
	site      handlers.Site
	logger    *zap.Logger
	render    *renderer
	assets    fs.FS
	catalog   *catalog.Catalog
	cards     []content.Card
	tracker   analytics.Tracker
	hub       *carousel.Hub
	downloads *download.Orchestrator

	// carouselOpts configure the per-stream players.
	carouselOpts []carousel.Option
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Logger(s.logger))
	r.Use(mw.AnalyticsPage)
	r.Use(mw.Recover(s.renderPanic))

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.methodNotAllowed)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	// Event streams stay open for the life of the card, outside the timeout
	// and compression middleware.
	r.Get("/carousel/{id}/stream", s.carouselStream)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))
		r.Use(chimw.Timeout(requestTimeout))

		r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(s.assets)))

		r.Get("/", s.homePage)
		r.Get("/home/printers", s.switchCurrency)
		r.Post("/home/contact", s.contactUs)
		r.Post("/home/cart", s.addToCart)
		r.Post("/home/modal/close", s.closeModal)
		r.Post("/home/scroll", s.scrollToPrinters)
		r.Post("/layout/tooltip/{which}", s.toggleTooltip)

		r.Get("/models", s.modelsPage)
		r.Post("/models/{collection}/download", s.downloadCollection)
		r.Post("/models/{collection}/{model}/download", s.downloadModel)

		r.With(mw.RequireHTMX).Post("/carousel/{id}/select", s.carouselSelect)
	})
	return r
}

// pageData fills the layout fields for the current request.
func (s *server) pageData(r *http.Request, d seo.Descriptor) handlers.PageData {
	return handlers.NewPageData(s.site, d, r.URL.Path)
}

// renderPage writes a full page and reports template failures as a bare 500.
func (s *server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data handlers.PageData) {
	if err := s.render.page(w, status, name, data); err != nil {
		mw.LoggerFrom(r.Context()).Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *server) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := s.render.fragment(w, http.StatusOK, name, data); err != nil {
		mw.LoggerFrom(r.Context()).Error("render fragment", zap.String("fragment", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// seeOther is the non-htmx fallback of every state transition.
func seeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
