package main

import (
	"net/http"

	"github.com/Space-Banane/peakprinting/internal/handlers"
	"github.com/Space-Banane/peakprinting/internal/nav"
	"github.com/Space-Banane/peakprinting/internal/seo"
)

func (s *server) renderError(w http.ResponseWriter, r *http.Request, status int, err error, stack []byte) {
	data := handlers.BuildErrorData(status, err, stack, s.site.Dev)
	d := seo.Error
	if data.NotFound {
		d = seo.NotFound
	}
	pd := s.pageData(r, d)
	pd.Breadcrumbs = nav.Trail(data.Message)
	pd.Error = &data
	s.renderPage(w, r, data.Status, "error", pd)
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, nil, nil)
}

func (s *server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusMethodNotAllowed, nil, nil)
}

func (s *server) badRequest(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusBadRequest, nil, nil)
}

// renderPanic is the recover middleware's error page.
func (s *server) renderPanic(w http.ResponseWriter, r *http.Request, err error, stack []byte) {
	s.renderError(w, r, http.StatusInternalServerError, err, stack)
}
