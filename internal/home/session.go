package home

import (
	"context"

	"github.com/Space-Banane/peakprinting/internal/analytics"
	"github.com/Space-Banane/peakprinting/internal/currency"
)

// Session is the per-page-load state of the landing page. It is a value;
// Apply returns the next state instead of mutating.
type Session struct {
	Currency  currency.Code
	ModalOpen bool
	Branding  string
}

// NewSession starts a page session with the default currency and the given
// branding reason. An empty reason draws one.
func NewSession(branding string) Session {
	if branding == "" {
		branding = PickBranding(nil)
	}
	return Session{Currency: currency.Default, Branding: branding}
}

// Action is a user interaction on the landing page.
type Action interface {
	apply(ctx context.Context, t analytics.Tracker, s Session) Session
}

type contactUs struct{}

func (contactUs) apply(ctx context.Context, t analytics.Tracker, s Session) Session {
	t.Track(ctx, analytics.EventContactUs)
	s.ModalOpen = true
	return s
}

type addToCart struct{}

func (addToCart) apply(ctx context.Context, t analytics.Tracker, s Session) Session {
	t.Track(ctx, analytics.EventAddToCart)
	return contactUs{}.apply(ctx, t, s)
}

type closeModal struct{}

func (closeModal) apply(ctx context.Context, t analytics.Tracker, s Session) Session {
	t.Track(ctx, analytics.EventClosedRickroll)
	s.ModalOpen = false
	return s
}

type scrollToPrinters struct{}

func (scrollToPrinters) apply(ctx context.Context, t analytics.Tracker, s Session) Session {
	t.Track(ctx, analytics.EventScrolledToPrinters)
	return s
}

type switchCurrency struct{ code currency.Code }

func (a switchCurrency) apply(ctx context.Context, t analytics.Tracker, s Session) Session {
	t.Track(ctx, analytics.EventSwitchedCurrency)
	s.Currency = a.code
	return s
}

// Actions.
var (
	ContactUs        Action = contactUs{}
	AddToCart        Action = addToCart{}
	CloseModal       Action = closeModal{}
	ScrollToPrinters Action = scrollToPrinters{}
)

// SwitchCurrency selects c for every displayed price.
func SwitchCurrency(c currency.Code) Action { return switchCurrency{code: c} }

// Apply records the action's events and returns the next state.
func (s Session) Apply(ctx context.Context, t analytics.Tracker, a Action) Session {
	if a == nil {
		return s
	}
	return a.apply(ctx, analytics.Or(t), s)
}

// Prices renders the printers in the session currency.
func (s Session) Prices() []PriceTag {
	c := s.Currency
	if c == "" {
		c = currency.Default
	}
	return PriceIn(c)
}
