package currency

import (
	"errors"
	"fmt"
	"strings"

	xcurrency "golang.org/x/text/currency"
)

// Code is one of the currencies the storefront can display prices in.
// Prices are stored in a EUR-equivalent unit and multiplied by Rate.
type Code string

const (
	EUR Code = "EUR"
	USD Code = "USD"
	GBP Code = "GBP"
)

// Default is the currency selected when a page session starts.
const Default = EUR

// ErrUnsupported is returned by Parse for well-formed ISO codes the site does not sell in.
var ErrUnsupported = errors.New("currency: unsupported code")

// All returns the supported currencies in display order.
func All() []Code {
	return []Code{EUR, USD, GBP}
}

// Rate returns the fixed multiplier applied to a EUR-equivalent price.
// The USD rate is inflated on purpose.
func (c Code) Rate() float64 {
	switch c {
	case EUR:
		return 1
	case USD:
		return 2.5
	case GBP:
		return 0.7
	}
	panic(fmt.Sprintf("currency: rate for unknown code %q", string(c)))
}

// Symbol returns the display symbol prefixed to formatted prices.
func (c Code) Symbol() string {
	switch c {
	case EUR:
		return "€"
	case USD:
		return "$"
	case GBP:
		return "£"
	}
	panic(fmt.Sprintf("currency: symbol for unknown code %q", string(c)))
}

// Label is the selector button caption.
func (c Code) Label() string {
	switch c {
	case EUR:
		return "€ Euro"
	case USD:
		return "$ USD"
	case GBP:
		return "£ GBP"
	}
	panic(fmt.Sprintf("currency: label for unknown code %q", string(c)))
}

// Unit returns the ISO 4217 unit backing the code.
func (c Code) Unit() xcurrency.Unit {
	switch c {
	case EUR:
		return xcurrency.EUR
	case USD:
		return xcurrency.USD
	case GBP:
		return xcurrency.GBP
	}
	panic(fmt.Sprintf("currency: unit for unknown code %q", string(c)))
}

func (c Code) String() string { return string(c) }

// Convert multiplies a EUR-equivalent base price by the code's rate.
func (c Code) Convert(base float64) float64 {
	return base * c.Rate()
}

// Format converts base and renders it with the symbol and exactly two decimals.
func (c Code) Format(base float64) string {
	return fmt.Sprintf("%s%.2f", c.Symbol(), c.Convert(base))
}

// Parse maps an ISO 4217 code onto the supported set.
func Parse(s string) (Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	unit, err := xcurrency.ParseISO(s)
	if err != nil {
		return "", fmt.Errorf("currency: parse %q: %w", s, err)
	}
	for _, c := range All() {
		if c.Unit() == unit {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, unit)
}

// ParseOrDefault is Parse with a fallback to Default for empty or unsupported input.
func ParseOrDefault(s string) Code {
	c, err := Parse(s)
	if err != nil {
		return Default
	}
	return c
}
