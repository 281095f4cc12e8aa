// Package home holds the landing page data and its interaction state.
package home

import (
	"math/rand/v2"

	"github.com/Space-Banane/peakprinting/internal/currency"
)

// Printer is one showcased product. Price is EUR-equivalent.
type Printer struct {
	Name  string
	Model string
	Price float64
	Image string
}

var printers = []Printer{
	{Name: "Base Peak", Model: "BP-01", Price: 299.99, Image: "/assets/img/base.png"},
	{Name: "Simple Peak", Model: "SP-01", Price: 499.99, Image: "/assets/img/simple.png"},
	{Name: "PeakPrinter Maximus", Model: "PP-Max", Price: 799.99, Image: "/assets/img/maximus.png"},
}

// Printers returns the showcased printers in display order.
func Printers() []Printer {
	out := make([]Printer, len(printers))
	copy(out, printers)
	return out
}

// BrandingReasons is the pool the hero tagline is drawn from.
var BrandingReasons = []string{
	"🏔️ Engineered at the peak of technology!",
	"🖨️ Prints so sharp, you’ll need gloves!",
	"😂 Guaranteed to make your neighbors jealous!",
	"🌈 Colors so vibrant, even rainbows are jealous!",
	"🤖 AI-powered paper jams (for nostalgia).",
}

// PickBranding draws one reason. A nil rng uses the global source.
func PickBranding(rng *rand.Rand) string {
	if rng == nil {
		return BrandingReasons[rand.IntN(len(BrandingReasons))]
	}
	return BrandingReasons[rng.IntN(len(BrandingReasons))]
}

// BrandingIndex returns the position of reason in BrandingReasons, or -1.
func BrandingIndex(reason string) int {
	for i, r := range BrandingReasons {
		if r == reason {
			return i
		}
	}
	return -1
}

// PriceTag is a printer priced in a display currency.
type PriceTag struct {
	Printer
	Display string
}

// PriceIn formats every printer's price in c.
func PriceIn(c currency.Code) []PriceTag {
	out := make([]PriceTag, 0, len(printers))
	for _, p := range printers {
		out = append(out, PriceTag{Printer: p, Display: c.Format(p.Price)})
	}
	return out
}
