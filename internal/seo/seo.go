package seo

import "strings"

// Descriptor is the title and description a page hands to the document head.
type Descriptor struct {
	Title       string
	Description string
}

var (
	Home     = Descriptor{Title: "peakprinting.top", Description: "Best printers on the hole world!"}
	Models   = Descriptor{Title: "3D Models – Peak Printing", Description: "Fun 3D models for your Peak Printer."}
	NotFound = Descriptor{Title: "404 – Peak Printing", Description: "The page you are looking for does not exist or has been moved."}
	Error    = Descriptor{Title: "Oops! – Peak Printing", Description: "An unexpected error occurred."}
)

// Site-wide social card copy.
const (
	SiteName        = "Peak Printing"
	SiteDescription = "Best printers on the hole world! Discover our range of high-quality, fun printers."
	SocialImage     = "/assets/img/screenshot_twtr.png"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card        string
	Title       string
	Description string
	Image       string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// Build resolves the head metadata for a page served at path under baseURL.
// Social cards always carry the site-wide copy; title and description follow d.
func Build(d Descriptor, baseURL, path string) Meta {
	base := strings.TrimRight(baseURL, "/")
	if path == "" {
		path = "/"
	}
	canonical := base + path
	image := SocialImage
	if base != "" {
		image = base + SocialImage
	}
	return Meta{
		Title:       d.Title,
		Description: d.Description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       SiteName,
			Description: SiteDescription,
			Image:       image,
			Type:        "website",
			URL:         base + "/",
			SiteName:    SiteName,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       SiteName,
			Description: SiteDescription,
			Image:       image,
		},
	}
}

// WithJSONLD appends serialized JSON-LD documents, skipping empty ones.
func (m Meta) WithJSONLD(docs ...any) Meta {
	for _, d := range docs {
		if s := JSON(d); s != "" {
			m.JSONLD = append(m.JSONLD, s)
		}
	}
	return m
}
