package home

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Space-Banane/peakprinting/internal/analytics"
	"github.com/Space-Banane/peakprinting/internal/currency"
)

func TestContactUsOpensModalWithOneEvent(t *testing.T) {
	t.Parallel()

	var rec analytics.Recorder
	s := NewSession(BrandingReasons[0])
	next := s.Apply(context.Background(), &rec, ContactUs)

	assert.Equal(t, []string{"contact_us_cliked"}, rec.Events())
	assert.True(t, next.ModalOpen)
	assert.False(t, s.ModalOpen, "Apply must not mutate the receiver")
}

func TestAddToCartEmitsTwoEvents(t *testing.T) {
	t.Parallel()

	var rec analytics.Recorder
	next := NewSession(BrandingReasons[1]).Apply(context.Background(), &rec, AddToCart)

	assert.Equal(t, []string{"clicked_cart", "contact_us_cliked"}, rec.Events())
	assert.True(t, next.ModalOpen)
}

func TestSwitchCurrencyOnlyChangesCurrency(t *testing.T) {
	t.Parallel()

	var rec analytics.Recorder
	s := NewSession(BrandingReasons[2])
	s.ModalOpen = true
	next := s.Apply(context.Background(), &rec, SwitchCurrency(currency.GBP))

	assert.Equal(t, []string{"switched_currency"}, rec.Events())
	assert.Equal(t, currency.GBP, next.Currency)
	assert.Equal(t, s.ModalOpen, next.ModalOpen)
	assert.Equal(t, s.Branding, next.Branding)

	prices := next.Prices()
	require.Len(t, prices, 3)
	assert.Equal(t, "£209.99", prices[0].Display)
	assert.Equal(t, "£349.99", prices[1].Display)
	assert.Equal(t, "£559.99", prices[2].Display)
}

func TestCloseModalAndScroll(t *testing.T) {
	t.Parallel()

	var rec analytics.Recorder
	s := Session{Currency: currency.USD, ModalOpen: true, Branding: "x"}
	s = s.Apply(context.Background(), &rec, ScrollToPrinters)
	assert.True(t, s.ModalOpen)
	s = s.Apply(context.Background(), &rec, CloseModal)
	assert.False(t, s.ModalOpen)
	assert.Equal(t, currency.USD, s.Currency)
	assert.Equal(t, []string{"scrolled_to_printers_clicked", "closed_rickroll"}, rec.Events())
}

func TestApplyWithoutTracker(t *testing.T) {
	t.Parallel()

	next := NewSession("x").Apply(context.Background(), nil, AddToCart)
	assert.True(t, next.ModalOpen)
}

func TestPickBrandingIsFromPool(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		assert.GreaterOrEqual(t, BrandingIndex(PickBranding(rng)), 0)
	}
	assert.Contains(t, BrandingReasons, NewSession("").Branding)
	assert.Equal(t, -1, BrandingIndex("nope"))
}

func TestPrintersAreCopied(t *testing.T) {
	t.Parallel()

	p := Printers()
	require.Len(t, p, 3)
	p[0].Name = "changed"
	assert.Equal(t, "Base Peak", Printers()[0].Name)
	assert.Equal(t, "€299.99", NewSession("x").Prices()[0].Display)
}
