package layout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Space-Banane/peakprinting/internal/analytics"
)

func TestToggleFlipsOneFlag(t *testing.T) {
	t.Parallel()

	var rec analytics.Recorder
	var n Navbar
	n = n.Toggle(context.Background(), &rec, Cart)
	assert.True(t, n.CartOpen)
	assert.False(t, n.AccountOpen)

	n = n.Toggle(context.Background(), &rec, Account)
	assert.True(t, n.CartOpen)
	assert.True(t, n.AccountOpen)

	n = n.Toggle(context.Background(), &rec, Cart)
	assert.False(t, n.Open(Cart))
	assert.True(t, n.Open(Account))

	assert.Equal(t, []string{"toggled_cart_tooltip", "toggled_account_tooltip", "toggled_cart_tooltip"}, rec.Events())
}

func TestParseTooltip(t *testing.T) {
	t.Parallel()

	got, err := ParseTooltip("account")
	require.NoError(t, err)
	assert.Equal(t, Account, got)
	assert.Equal(t, "You are not logged in", got.Heading())
	assert.Equal(t, "Your cart is empty", Cart.Heading())

	_, err = ParseTooltip("wishlist")
	assert.Error(t, err)
}
