package handlers

import (
	"github.com/Space-Banane/peakprinting/internal/layout"
	"github.com/Space-Banane/peakprinting/internal/nav"
	"github.com/Space-Banane/peakprinting/internal/seo"
)

// PageData is the view model shared by every page using the base layout.
type PageData struct {
	Title     string
	SEO       seo.Meta
	Analytics Analytics
	Dev       bool

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Navbar      layout.Navbar

	// Per-page payloads; exactly one is set.
	Home   *HomeData
	Models *ModelsData
	Error  *ErrorData
}

// Site carries what every page needs from configuration.
type Site struct {
	BaseURL   string
	Analytics Analytics
	Dev       bool
}

// NewPageData fills the layout fields for a page served at path.
func NewPageData(site Site, d seo.Descriptor, path string) PageData {
	return PageData{
		Title:       d.Title,
		SEO:         seo.Build(d, site.BaseURL, path),
		Analytics:   site.Analytics,
		Dev:         site.Dev,
		Path:        path,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
	}
}
