package handlers

import (
	"github.com/Space-Banane/peakprinting/internal/carousel"
	"github.com/Space-Banane/peakprinting/internal/catalog"
	"github.com/Space-Banane/peakprinting/internal/download"
	"github.com/Space-Banane/peakprinting/internal/markup"
)

// ModelsData is the view model for the model catalog page.
type ModelsData struct {
	Collections []CollectionView
	Empty       bool
}

// CollectionView is one collection section.
type CollectionView struct {
	ID          string
	Title       string
	Icon        string
	Description []markup.Fragment
	BannerURL   string
	BulkLabel   string
	ModelCount  int
	Models      []ModelCardView

	// Plan is set after a bulk download was requested.
	Plan []download.Step
}

// ModelCardView is one model card with resolved URLs and metadata sections.
type ModelCardView struct {
	CollectionID  string
	ID            string
	Title         string
	TypeNoun      string
	Icon          string
	Description   []markup.Fragment
	Images        []string
	FileURL       string
	DownloadLabel string

	Features []string
	Pros     []catalog.ProCon
	Cons     []catalog.ProCon
	Changes  []ChangeView

	Carousel CarouselView
}

// HasProCons reports whether the pros and cons section renders.
func (m ModelCardView) HasProCons() bool { return len(m.Pros)+len(m.Cons) > 0 }

// ChangeView is a change entry. Versus is empty when compared_to does not
// resolve to a model of the same collection.
type ChangeView struct {
	Name   string
	Icon   string
	Good   bool
	Versus string
}

// CarouselView is one rendered frame of a model card carousel.
type CarouselView struct {
	ID           string
	CollectionID string
	ModelID      string
	Title        string
	Images       []string
	Index        int
	Current      string
	Animated     bool
	Dots         []Dot
}

// Dot is one manual selection control.
type Dot struct {
	Index  int
	Active bool
}

// NewCarouselView renders the frame of c for the card instance id.
func NewCarouselView(id string, card ModelCardView, c *carousel.Carousel) CarouselView {
	v := CarouselView{
		ID:           id,
		CollectionID: card.CollectionID,
		ModelID:      card.ID,
		Title:        card.Title,
		Images:       c.Images(),
		Index:        c.Index(),
		Current:      c.Current(),
		Animated:     c.Animated(),
	}
	if v.Animated {
		v.Dots = make([]Dot, c.Len())
		for i := range v.Dots {
			v.Dots[i] = Dot{Index: i, Active: i == v.Index}
		}
	}
	return v
}

// AssignCarousels gives every card a fresh carousel instance at index 0.
func (d *ModelsData) AssignCarousels(newID func() string) {
	for i := range d.Collections {
		cards := d.Collections[i].Models
		for j := range cards {
			cards[j].Carousel = NewCarouselView(newID(), cards[j], carousel.New(cards[j].Images))
		}
	}
}

// BuildModelsData resolves the catalog into page view models.
func BuildModelsData(cat *catalog.Catalog) ModelsData {
	if cat == nil || cat.Empty() {
		return ModelsData{Empty: true}
	}
	var out ModelsData
	for _, col := range cat.Collections() {
		out.Collections = append(out.Collections, BuildCollectionView(col))
	}
	return out
}

// BuildCollectionView resolves a single collection.
func BuildCollectionView(col catalog.Collection) CollectionView {
	v := CollectionView{
		ID:          col.ID,
		Title:       col.Title,
		Icon:        col.Icon,
		Description: markup.Parse(col.Description),
		BannerURL:   col.BannerURL(),
		BulkLabel:   col.BulkDownloadLabel(),
		ModelCount:  len(col.Models),
	}
	for _, m := range col.Models {
		v.Models = append(v.Models, BuildModelCard(col, m))
	}
	return v
}

// BuildModelCard resolves one model of col.
func BuildModelCard(col catalog.Collection, m catalog.Model) ModelCardView {
	card := ModelCardView{
		CollectionID:  col.ID,
		ID:            m.ID,
		Title:         m.Title,
		TypeNoun:      m.Type.Noun(),
		Icon:          m.Icon,
		Description:   markup.Parse(m.Description),
		Images:        col.ImageURLs(m),
		FileURL:       col.FileURL(m),
		DownloadLabel: col.DownloadLabel(m),
	}
	md := m.Metadata
	if md.HasFeatures() {
		card.Features = append([]string(nil), md.Features...)
	}
	if md.HasProCons() {
		card.Pros = md.Pros()
		card.Cons = md.Cons()
	}
	if md.HasChanges() {
		for _, ch := range md.Changes {
			cv := ChangeView{Name: ch.Name, Icon: ch.Icon, Good: ch.Good}
			if target, ok := col.Compare(ch); ok {
				cv.Versus = target.Title
			}
			card.Changes = append(card.Changes, cv)
		}
	}
	return card
}
