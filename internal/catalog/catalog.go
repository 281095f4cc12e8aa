// Package catalog holds the static, declarative description of the downloadable
// 3D model collections shown on the models page.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDownloadLabel is used when neither the model nor its collection overrides it.
	DefaultDownloadLabel = "Download STL"
	// DefaultBulkDownloadLabel captions the collection-wide download button.
	DefaultBulkDownloadLabel = "Download all"
	// PicsDir is the sub-path under a collection base URL where model images live.
	PicsDir = "Pics/"
)

// ErrNotFound is returned when a collection or model id does not exist.
var ErrNotFound = errors.New("catalog: not found")

//go:embed default.yaml
var defaultCatalog []byte

// ModelType discriminates model variants. Only coasters exist today.
type ModelType string

const (
	TypeCoaster ModelType = "coaster"
)

// Known reports whether t is a supported variant.
func (t ModelType) Known() bool {
	switch t {
	case TypeCoaster:
		return true
	}
	return false
}

// Noun is the human label of the variant.
func (t ModelType) Noun() string {
	switch t {
	case TypeCoaster:
		return "Coaster"
	}
	return string(t)
}

// Catalog is the full set of collections, immutable once loaded.
type Catalog struct {
	collections []Collection
}

// Collection groups models that share a base download URL.
type Collection struct {
	ID                      string  `yaml:"id"`
	Title                   string  `yaml:"title"`
	Description             string  `yaml:"description"`
	Icon                    string  `yaml:"icon"`
	BannerImage             string  `yaml:"banner_image,omitempty"`
	BaseURL                 string  `yaml:"base_url"`
	ItemDownloadLabel       string  `yaml:"download_label,omitempty"`
	CollectionDownloadLabel string  `yaml:"collection_download_label,omitempty"`
	Models                  []Model `yaml:"models,omitempty"`
}

// Model is a single downloadable item.
type Model struct {
	ID            string    `yaml:"id"`
	Title         string    `yaml:"title"`
	Type          ModelType `yaml:"type"`
	Description   string    `yaml:"description"`
	Icon          string    `yaml:"icon"`
	Images        []string  `yaml:"images,omitempty"`
	FileURL       string    `yaml:"file_url"`
	DownloadLabel string    `yaml:"download_label,omitempty"`
	Metadata      *Metadata `yaml:"metadata,omitempty"`
}

// Metadata is optional comparison and feature data attached to a model.
type Metadata struct {
	Features []string `yaml:"features,omitempty"`
	ProCons  []ProCon `yaml:"pro_cons,omitempty"`
	Changes  []Change `yaml:"changes,omitempty"`
}

// ProCon is a single pro (Good) or con entry.
type ProCon struct {
	Text string `yaml:"text"`
	Good bool   `yaml:"good"`
}

// Change describes how a model differs from another model of the same collection.
type Change struct {
	Name       string `yaml:"name"`
	Icon       string `yaml:"icon"`
	Good       bool   `yaml:"good"`
	ComparedTo string `yaml:"compared_to"`
}

type document struct {
	Collections []Collection `yaml:"collections"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return New(doc.Collections)
}

// New validates collections and wraps them in a Catalog.
func New(collections []Collection) (*Catalog, error) {
	if err := Validate(collections); err != nil {
		return nil, err
	}
	return &Catalog{collections: collections}, nil
}

// Collections returns the collections in declaration order.
func (c *Catalog) Collections() []Collection {
	if c == nil {
		return nil
	}
	out := make([]Collection, len(c.collections))
	copy(out, c.collections)
	return out
}

// Collection returns the collection with the given id.
func (c *Catalog) Collection(id string) (Collection, bool) {
	if c == nil {
		return Collection{}, false
	}
	for _, col := range c.collections {
		if col.ID == id {
			return col, true
		}
	}
	return Collection{}, false
}

// Lookup resolves a collection and one of its models.
func (c *Catalog) Lookup(collectionID, modelID string) (Collection, Model, error) {
	col, ok := c.Collection(collectionID)
	if !ok {
		return Collection{}, Model{}, fmt.Errorf("%w: collection %q", ErrNotFound, collectionID)
	}
	m, ok := col.Model(modelID)
	if !ok {
		return Collection{}, Model{}, fmt.Errorf("%w: model %q in %q", ErrNotFound, modelID, collectionID)
	}
	return col, m, nil
}

// Empty reports whether the catalog has no models at all.
func (c *Catalog) Empty() bool {
	for _, col := range c.Collections() {
		if len(col.Models) > 0 {
			return false
		}
	}
	return true
}

// Model returns the model with the given id.
func (col Collection) Model(id string) (Model, bool) {
	for _, m := range col.Models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// FileURL resolves the downloadable file of m against the collection base URL.
func (col Collection) FileURL(m Model) string {
	return col.BaseURL + m.FileURL
}

// ImageURL resolves an image filename under the collection's Pics directory.
func (col Collection) ImageURL(name string) string {
	return col.BaseURL + PicsDir + name
}

// ImageURLs resolves every image of m in order.
func (col Collection) ImageURLs(m Model) []string {
	if len(m.Images) == 0 {
		return nil
	}
	out := make([]string, 0, len(m.Images))
	for _, name := range m.Images {
		out = append(out, col.ImageURL(name))
	}
	return out
}

// BannerURL resolves the optional banner image.
func (col Collection) BannerURL() string {
	if strings.TrimSpace(col.BannerImage) == "" {
		return ""
	}
	return col.ImageURL(col.BannerImage)
}

// DownloadLabel picks the model override, then the collection override, then the default.
func (col Collection) DownloadLabel(m Model) string {
	if l := strings.TrimSpace(m.DownloadLabel); l != "" {
		return l
	}
	if l := strings.TrimSpace(col.ItemDownloadLabel); l != "" {
		return l
	}
	return DefaultDownloadLabel
}

// BulkDownloadLabel captions the collection-wide download action.
func (col Collection) BulkDownloadLabel() string {
	if l := strings.TrimSpace(col.CollectionDownloadLabel); l != "" {
		return l
	}
	return DefaultBulkDownloadLabel
}

// Compare resolves the model a change is compared to. ok is false when the
// reference does not match any model of the collection.
func (col Collection) Compare(ch Change) (Model, bool) {
	if strings.TrimSpace(ch.ComparedTo) == "" {
		return Model{}, false
	}
	return col.Model(ch.ComparedTo)
}

// HasFeatures reports whether the feature section should render.
func (md *Metadata) HasFeatures() bool { return md != nil && len(md.Features) > 0 }

// HasProCons reports whether the pros and cons section should render.
func (md *Metadata) HasProCons() bool { return md != nil && len(md.ProCons) > 0 }

// HasChanges reports whether the changes section should render.
func (md *Metadata) HasChanges() bool { return md != nil && len(md.Changes) > 0 }

// Pros returns the good entries in order.
func (md *Metadata) Pros() []ProCon { return md.filter(true) }

// Cons returns the bad entries in order.
func (md *Metadata) Cons() []ProCon { return md.filter(false) }

func (md *Metadata) filter(good bool) []ProCon {
	if md == nil {
		return nil
	}
	var out []ProCon
	for _, pc := range md.ProCons {
		if pc.Good == good {
			out = append(out, pc)
		}
	}
	return out
}
