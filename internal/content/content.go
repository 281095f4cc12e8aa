// Package content loads the markdown copy cards shown on the landing page.
//
// Each card is a markdown file with YAML front matter:
//
//	---
//	title: Handcrafted Excellence
//	icon: "🛠️"
//	tone: amber
//	order: 1
//	---
//	Body in markdown.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed cards/*.md
var embedded embed.FS

// CardsDir is the directory of the embedded cards inside Embedded().
const CardsDir = "cards"

// Embedded returns the card files compiled into the binary.
func Embedded() fs.FS { return embedded }

// Tones a card may use. Unknown tones fall back to DefaultTone.
var tones = map[string]bool{"amber": true, "blue": true, "purple": true, "green": true}

// DefaultTone is used when a card names no tone or an unknown one.
const DefaultTone = "amber"

// Card is one rendered copy card.
type Card struct {
	Slug  string
	Title string
	Icon  string
	Tone  string
	Order int
	Body  template.HTML
}

type cardFrontMatter struct {
	Title string `yaml:"title"`
	Icon  string `yaml:"icon"`
	Tone  string `yaml:"tone"`
	Order int    `yaml:"order"`
}

var (
	md     = goldmark.New(goldmark.WithExtensions(extension.Typographer))
	policy = newCardPolicy()
)

func newCardPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	return p
}

// LoadCards parses every .md file in dir, sorted by order then slug.
func LoadCards(fsys fs.FS, dir string) ([]Card, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", dir, err)
	}
	var cards []Card
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", e.Name(), err)
		}
		card, err := ParseCard(strings.TrimSuffix(e.Name(), ".md"), data)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Order != cards[j].Order {
			return cards[i].Order < cards[j].Order
		}
		return cards[i].Slug < cards[j].Slug
	})
	return cards, nil
}

// ParseCard renders a single card document.
func ParseCard(slug string, data []byte) (Card, error) {
	fm, body := splitFrontMatter(string(data))
	front := cardFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Card{}, fmt.Errorf("content: parse front matter %s: %w", slug, err)
		}
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return Card{}, fmt.Errorf("content: render %s: %w", slug, err)
	}
	tone := strings.ToLower(strings.TrimSpace(front.Tone))
	if !tones[tone] {
		tone = DefaultTone
	}
	title := strings.TrimSpace(front.Title)
	if title == "" {
		title = slug
	}
	return Card{
		Slug:  slug,
		Title: title,
		Icon:  strings.TrimSpace(front.Icon),
		Tone:  tone,
		Order: front.Order,
		Body:  template.HTML(policy.SanitizeBytes(buf.Bytes())),
	}, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
