// Package layout holds the root layout chrome shared by every page.
package layout

import (
	"context"
	"fmt"

	"github.com/Space-Banane/peakprinting/internal/analytics"
)

// Tooltip identifies one of the navbar overlays.
type Tooltip string

const (
	Cart    Tooltip = "cart"
	Account Tooltip = "account"
)

// ParseTooltip validates a tooltip name from a URL segment.
func ParseTooltip(s string) (Tooltip, error) {
	switch Tooltip(s) {
	case Cart, Account:
		return Tooltip(s), nil
	}
	return "", fmt.Errorf("layout: unknown tooltip %q", s)
}

// Heading is the bold tooltip line.
func (t Tooltip) Heading() string {
	switch t {
	case Cart:
		return "Your cart is empty"
	case Account:
		return "You are not logged in"
	}
	panic(fmt.Sprintf("layout: heading for unknown tooltip %q", string(t)))
}

// Hint is the small tooltip line.
func (t Tooltip) Hint() string {
	switch t {
	case Cart:
		return "Please add some items to your cart."
	case Account:
		return "Please log in to access your account."
	}
	panic(fmt.Sprintf("layout: hint for unknown tooltip %q", string(t)))
}

func (t Tooltip) event() string {
	if t == Cart {
		return analytics.EventCartTooltip
	}
	return analytics.EventAccountTooltip
}

// Navbar is the tooltip state of the root layout. The two flags are
// independent.
type Navbar struct {
	CartOpen    bool
	AccountOpen bool
}

// Open reports whether the tooltip is visible.
func (n Navbar) Open(t Tooltip) bool {
	if t == Cart {
		return n.CartOpen
	}
	return n.AccountOpen
}

// Toggle flips one tooltip and records one event.
func (n Navbar) Toggle(ctx context.Context, tr analytics.Tracker, t Tooltip) Navbar {
	analytics.Or(tr).Track(ctx, t.event())
	switch t {
	case Cart:
		n.CartOpen = !n.CartOpen
	case Account:
		n.AccountOpen = !n.AccountOpen
	}
	return n
}
