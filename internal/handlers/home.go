package handlers

import (
	"github.com/Space-Banane/peakprinting/internal/content"
	"github.com/Space-Banane/peakprinting/internal/currency"
	"github.com/Space-Banane/peakprinting/internal/home"
)

// CurrencyOption is one currency selector button.
type CurrencyOption struct {
	Code     currency.Code
	Label    string
	Selected bool
}

// HomeData is the view model for the landing page.
type HomeData struct {
	Session    home.Session
	Branding   int
	Currencies []CurrencyOption
	Prices     []home.PriceTag
	Cards      []content.Card
}

// BuildHomeData renders session state into the landing page model.
func BuildHomeData(s home.Session, cards []content.Card) HomeData {
	return HomeData{
		Session:    s,
		Branding:   home.BrandingIndex(s.Branding),
		Currencies: CurrencyOptions(s.Currency),
		Prices:     s.Prices(),
		Cards:      cards,
	}
}

// CurrencyOptions lists every supported currency, marking selected.
func CurrencyOptions(selected currency.Code) []CurrencyOption {
	all := currency.All()
	out := make([]CurrencyOption, 0, len(all))
	for _, c := range all {
		out = append(out, CurrencyOption{Code: c, Label: c.Label(), Selected: c == selected})
	}
	return out
}
