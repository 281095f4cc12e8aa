package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Space-Banane/peakprinting/internal/analytics"
	"github.com/Space-Banane/peakprinting/internal/catalog"
	"github.com/Space-Banane/peakprinting/internal/download"
	"github.com/Space-Banane/peakprinting/internal/handlers"
	mw "github.com/Space-Banane/peakprinting/internal/middleware"
	"github.com/Space-Banane/peakprinting/internal/nav"
	"github.com/Space-Banane/peakprinting/internal/seo"
)

func (s *server) modelsPage(w http.ResponseWriter, r *http.Request) {
	s.renderModels(w, r, "", nil)
}

// renderModels renders the catalog page. plan, when set, is attached to the
// collection planID.
func (s *server) renderModels(w http.ResponseWriter, r *http.Request, planID string, plan []download.Step) {
	data := handlers.BuildModelsData(s.catalog)
	data.AssignCarousels(s.hub.NewID)
	var urls []string
	for i := range data.Collections {
		col := &data.Collections[i]
		if col.ID == planID {
			col.Plan = plan
		}
		for _, m := range col.Models {
			urls = append(urls, m.FileURL)
		}
	}
	pd := s.pageData(r, seo.Models)
	// The download fallback renders this page under its own route.
	pd.Breadcrumbs = nav.Breadcrumbs("/models")
	if len(urls) > 0 {
		pd.SEO = pd.SEO.WithJSONLD(seo.ItemList(seo.Models.Title, urls))
	}
	pd.Models = &data
	s.renderPage(w, r, http.StatusOK, "models", pd)
}

// downloadModel records the download and hands the browser the file.
func (s *server) downloadModel(w http.ResponseWriter, r *http.Request) {
	col, m, err := s.catalog.Lookup(chi.URLParam(r, "collection"), chi.URLParam(r, "model"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.notFound(w, r)
			return
		}
		s.renderError(w, r, http.StatusInternalServerError, err, nil)
		return
	}
	s.tracker.Track(r.Context(), analytics.ModelDownloadEvent(m.ID))
	seeOther(w, r, col.FileURL(m))
}

// downloadCollection records one collection event and answers with the
// staggered download plan. The browser fires the downloads from each link's
// delay. Trigger on the server only logs every step once it falls due.
func (s *server) downloadCollection(w http.ResponseWriter, r *http.Request) {
	col, ok := s.catalog.Collection(chi.URLParam(r, "collection"))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.tracker.Track(r.Context(), analytics.CollectionDownloadEvent(col.ID))

	logger := mw.LoggerFrom(r.Context())
	plan := s.downloads.Plan(col)
	s.downloads.Trigger(col, func(step download.Step) {
		logger.Debug("collection download step due",
			zap.String("collection", col.ID),
			zap.String("model", step.ModelID),
			zap.Int64("delay_ms", step.DelayMillis()))
	})

	if !mw.IsHTMX(r.Context()) {
		s.renderModels(w, r, col.ID, plan)
		return
	}
	s.renderFragment(w, r, "frag_download_plan", handlers.CollectionView{ID: col.ID, Plan: plan})
}
