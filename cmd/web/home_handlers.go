package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/Space-Banane/peakprinting/internal/currency"
	"github.com/Space-Banane/peakprinting/internal/handlers"
	"github.com/Space-Banane/peakprinting/internal/home"
	mw "github.com/Space-Banane/peakprinting/internal/middleware"
	"github.com/Space-Banane/peakprinting/internal/seo"
)

// sessionFrom restores the landing page state carried by the request. The
// currency travels in the query string or the form; the branding is redrawn.
func sessionFrom(r *http.Request) home.Session {
	s := home.NewSession("")
	s.Currency = currency.ParseOrDefault(r.FormValue("currency"))
	s.ModalOpen = r.FormValue("modal") == "1"
	return s
}

func homeURL(c currency.Code, modal bool, fragment string) string {
	q := url.Values{}
	if c != currency.Default {
		q.Set("currency", c.String())
	}
	if modal {
		q.Set("modal", "1")
	}
	u := url.URL{Path: "/", RawQuery: q.Encode(), Fragment: fragment}
	return u.String()
}

func (s *server) homePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	pd := s.pageData(r, seo.Home)
	pd.SEO = pd.SEO.WithJSONLD(s.homeJSONLD(sess.Currency)...)
	data := handlers.BuildHomeData(sess, s.cards)
	pd.Home = &data
	s.renderPage(w, r, http.StatusOK, "home", pd)
}

func (s *server) homeJSONLD(c currency.Code) []any {
	docs := []any{seo.Organization(seo.SiteName, s.site.BaseURL+"/", s.site.BaseURL+seo.SocialImage)}
	for _, p := range home.PriceIn(c) {
		offer := &seo.Offer{Price: fmt.Sprintf("%.2f", c.Convert(p.Price)), Currency: c.String()}
		docs = append(docs, seo.Product(p.Name, p.Model, s.site.BaseURL+"/#printers-section", s.site.BaseURL+p.Image, p.Model, offer))
	}
	return docs
}

func (s *server) switchCurrency(w http.ResponseWriter, r *http.Request) {
	c, err := currency.Parse(r.URL.Query().Get("currency"))
	if err != nil {
		s.badRequest(w, r)
		return
	}
	sess := sessionFrom(r).Apply(r.Context(), s.tracker, home.SwitchCurrency(c))
	if !mw.IsHTMX(r.Context()) {
		seeOther(w, r, homeURL(sess.Currency, false, "printers-section"))
		return
	}
	w.Header().Set("HX-Push-Url", homeURL(sess.Currency, false, ""))
	s.renderFragment(w, r, "frag_printers", handlers.BuildHomeData(sess, nil))
}

func (s *server) contactUs(w http.ResponseWriter, r *http.Request) {
	s.applyModal(w, r, home.ContactUs)
}

func (s *server) addToCart(w http.ResponseWriter, r *http.Request) {
	s.applyModal(w, r, home.AddToCart)
}

func (s *server) closeModal(w http.ResponseWriter, r *http.Request) {
	s.applyModal(w, r, home.CloseModal)
}

// applyModal runs an action that changes the modal and re-renders its slot.
func (s *server) applyModal(w http.ResponseWriter, r *http.Request, a home.Action) {
	sess := sessionFrom(r).Apply(r.Context(), s.tracker, a)
	if !mw.IsHTMX(r.Context()) {
		seeOther(w, r, homeURL(sess.Currency, sess.ModalOpen, ""))
		return
	}
	s.renderFragment(w, r, "frag_modal", sess)
}

func (s *server) scrollToPrinters(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r).Apply(r.Context(), s.tracker, home.ScrollToPrinters)
	if !mw.IsHTMX(r.Context()) {
		seeOther(w, r, homeURL(sess.Currency, false, "printers-section"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
