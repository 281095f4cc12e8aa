package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Space-Banane/peakprinting/internal/carousel"
	"github.com/Space-Banane/peakprinting/internal/catalog"
	"github.com/Space-Banane/peakprinting/internal/currency"
	"github.com/Space-Banane/peakprinting/internal/home"
	"github.com/Space-Banane/peakprinting/internal/markup"
	"github.com/Space-Banane/peakprinting/internal/seo"
)

func TestBuildModelsDataResolvesCards(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Default()
	require.NoError(t, err)

	data := BuildModelsData(cat)
	require.False(t, data.Empty)
	require.Len(t, data.Collections, 1)

	col := data.Collections[0]
	assert.Equal(t, "Download all coasters", col.BulkLabel)
	assert.Equal(t, "https://cdn.peakprinting.top/models/coasters/Pics/banner.jpg", col.BannerURL)
	require.Len(t, col.Models, 3)

	classic := col.Models[0]
	assert.Equal(t, "https://cdn.peakprinting.top/models/coasters/classic_peak_coaster.stl", classic.FileURL)
	assert.Equal(t, "Download STL", classic.DownloadLabel)
	assert.Len(t, classic.Images, 3)
	assert.Len(t, classic.Pros, 2)
	assert.Len(t, classic.Cons, 1)
	assert.True(t, classic.HasProCons())
	assert.Empty(t, classic.Changes)

	hex := col.Models[1]
	assert.Equal(t, "Download Hex STL", hex.DownloadLabel)
	assert.False(t, hex.HasProCons(), "no pro_cons field means no section")
	require.Len(t, hex.Changes, 2)
	assert.Equal(t, "Classic Peak Coaster", hex.Changes[0].Versus)

	summit := col.Models[2]
	assert.Empty(t, summit.Images)
	assert.Empty(t, summit.Features)
	require.Len(t, summit.Changes, 2)
	assert.Equal(t, "Classic Peak Coaster", summit.Changes[0].Versus)
	assert.Equal(t, ChangeView{Name: "Looks like a real summit", Icon: "📸", Good: true}, summit.Changes[1])
}

func TestBuildModelCardDescriptionFragments(t *testing.T) {
	t.Parallel()

	col := catalog.Collection{ID: "c", BaseURL: "u/"}
	card := BuildModelCard(col, catalog.Model{ID: "m", Description: "a <b> c", Type: catalog.TypeCoaster})
	assert.Equal(t, []markup.Fragment{{Text: "a "}, {Text: "b", Emphasized: true}, {Text: " c"}}, card.Description)
	assert.Equal(t, "Coaster", card.TypeNoun)
	assert.Nil(t, card.Changes)
}

func TestBuildModelsDataEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, BuildModelsData(nil).Empty)
	empty, err := catalog.New(nil)
	require.NoError(t, err)
	assert.True(t, BuildModelsData(empty).Empty)
}

func TestBuildErrorData(t *testing.T) {
	t.Parallel()

	nf := BuildErrorData(http.StatusNotFound, nil, nil, false)
	assert.True(t, nf.NotFound)
	assert.Equal(t, "Page Not Found", nf.Message)

	boom := errors.New("boom")
	prod := BuildErrorData(http.StatusInternalServerError, boom, []byte("stack"), false)
	assert.Equal(t, "Oops!", prod.Message)
	assert.Equal(t, "An unexpected error occurred.", prod.Details)
	assert.Empty(t, prod.Stack)

	dev := BuildErrorData(http.StatusInternalServerError, boom, []byte("goroutine 1\n"), true)
	assert.Equal(t, "boom", dev.Details)
	assert.Equal(t, "goroutine 1", dev.Stack)

	status := BuildErrorData(http.StatusMethodNotAllowed, nil, nil, true)
	assert.Equal(t, "Error", status.Message)
	assert.Equal(t, "Method Not Allowed", status.Details)
}

func TestBuildHomeData(t *testing.T) {
	t.Parallel()

	s := home.Session{Currency: currency.USD, Branding: home.BrandingReasons[4]}
	data := BuildHomeData(s, nil)
	assert.Equal(t, 4, data.Branding)
	require.Len(t, data.Currencies, 3)
	assert.True(t, data.Currencies[1].Selected)
	assert.False(t, data.Currencies[0].Selected)
	assert.True(t, strings.HasPrefix(data.Prices[0].Display, "$"))
}

func TestNewPageData(t *testing.T) {
	t.Parallel()

	pd := NewPageData(Site{BaseURL: "https://peakprinting.top", Analytics: Analytics{ScriptURL: "s", WebsiteID: "w"}}, seo.Models, "/models")
	assert.Equal(t, "3D Models – Peak Printing", pd.Title)
	assert.True(t, pd.Nav[1].Active)
	assert.True(t, pd.Analytics.Enabled())
	assert.False(t, Analytics{ScriptURL: "s"}.Enabled())
}

func TestCarouselViews(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Default()
	require.NoError(t, err)
	data := BuildModelsData(cat)
	n := 0
	data.AssignCarousels(func() string { n++; return fmt.Sprintf("c%d", n) })

	cards := data.Collections[0].Models
	require.Len(t, cards, 3)
	classic := cards[0].Carousel
	assert.Equal(t, "c1", classic.ID)
	assert.Equal(t, "classic", classic.ModelID)
	assert.True(t, classic.Animated)
	require.Len(t, classic.Dots, 3)
	assert.True(t, classic.Dots[0].Active)
	assert.Equal(t, classic.Images[0], classic.Current)

	summit := cards[2].Carousel
	assert.Equal(t, "c3", summit.ID)
	assert.False(t, summit.Animated)
	assert.Empty(t, summit.Current)
	assert.Empty(t, summit.Dots)

	c := carousel.New(cards[1].Images)
	require.NoError(t, c.Select(1))
	hex := NewCarouselView("x", cards[1], c)
	assert.Equal(t, 1, hex.Index)
	assert.True(t, hex.Dots[1].Active)
	assert.False(t, hex.Dots[0].Active)
}
