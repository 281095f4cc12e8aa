package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string
	Label string
	Icon  string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Icon   string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", Label: "Home", Icon: "🖨️"},
	{Path: "/models", Label: "Models", Icon: "🧩"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Icon:   it.Icon,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path, starting at Home.
// Known top-level sections use their nav label; deeper segments are prettified.
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href += "/" + seg
		label := titleFromSegment(seg)
		if i == 0 {
			for _, it := range Main {
				if it.Path == href {
					label = it.Label
					break
				}
			}
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: label, Active: i == len(parts)-1})
	}
	return crumbs
}

// Trail is Home followed by a single unlinked entry for pages that do not
// map onto a navigable path, such as error pages.
func Trail(label string) []Crumb {
	return []Crumb{{Href: "/", Label: "Home"}, {Label: label, Active: true}}
}

func titleFromSegment(seg string) string {
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
