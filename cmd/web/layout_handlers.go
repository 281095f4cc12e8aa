package main

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Space-Banane/peakprinting/internal/layout"
	mw "github.com/Space-Banane/peakprinting/internal/middleware"
)

// toggleTooltip flips one navbar tooltip. open is the state the browser is
// currently showing.
func (s *server) toggleTooltip(w http.ResponseWriter, r *http.Request) {
	t, err := layout.ParseTooltip(chi.URLParam(r, "which"))
	if err != nil {
		s.notFound(w, r)
		return
	}
	open, _ := strconv.ParseBool(r.URL.Query().Get("open"))

	var nb layout.Navbar
	switch t {
	case layout.Cart:
		nb.CartOpen = open
	case layout.Account:
		nb.AccountOpen = open
	}
	nb = nb.Toggle(r.Context(), s.tracker, t)

	if !mw.IsHTMX(r.Context()) {
		seeOther(w, r, sameSiteReferer(r))
		return
	}
	s.renderFragment(w, r, "frag_tooltip", newTooltipView(t, nb.Open(t)))
}

// sameSiteReferer returns the path of the Referer when it points at this
// host, or "/".
func sameSiteReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	return (&url.URL{Path: ref.Path, RawQuery: ref.RawQuery}).String()
}
