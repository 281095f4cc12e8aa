package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMarksActive(t *testing.T) {
	t.Parallel()

	items := Build("/models")
	require.Len(t, items, 2)
	assert.False(t, items[0].Active)
	assert.True(t, items[1].Active)

	items = Build("")
	assert.True(t, items[0].Active)
	assert.False(t, items[1].Active)

	assert.True(t, Build("/models/coasters")[1].Active)
	assert.False(t, Build("/modelsx")[1].Active)
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("/models/peak-coasters")
	require.Len(t, crumbs, 3)
	assert.Equal(t, Crumb{Href: "/", Label: "Home"}, crumbs[0])
	assert.Equal(t, Crumb{Href: "/models", Label: "Models"}, crumbs[1])
	assert.Equal(t, Crumb{Href: "/models/peak-coasters", Label: "Peak coasters", Active: true}, crumbs[2])

	assert.Equal(t, []Crumb{{Href: "/", Label: "Home", Active: true}}, Breadcrumbs("/"))
}

func TestTrail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Crumb{
		{Href: "/", Label: "Home"},
		{Label: "Page Not Found", Active: true},
	}, Trail("Page Not Found"))
}
