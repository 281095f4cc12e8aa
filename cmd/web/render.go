package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/Space-Banane/peakprinting/internal/layout"
)

// renderer parses the layout and partials once into a root set and clones it
// for every page under pages/. With reload set, templates are reparsed from
// fsys on each render.
type renderer struct {
	fsys   fs.FS
	reload bool
	root   *template.Template
	pages  map[string]*template.Template
}

func newRenderer(fsys fs.FS, reload bool) (*renderer, error) {
	rd := &renderer{fsys: fsys, reload: reload}
	root, pages, err := rd.parse()
	if err != nil {
		return nil, err
	}
	rd.root, rd.pages = root, pages
	return rd, nil
}

type tooltipView struct {
	Name    string
	Open    bool
	Heading string
	Hint    string
}

func newTooltipView(t layout.Tooltip, open bool) tooltipView {
	return tooltipView{Name: string(t), Open: open, Heading: t.Heading(), Hint: t.Hint()}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"tooltip": func(name string, open bool) (tooltipView, error) {
			t, err := layout.ParseTooltip(name)
			if err != nil {
				return tooltipView{}, err
			}
			return newTooltipView(t, open), nil
		},
		// JSON-LD documents are serialized by internal/seo.
		"jsonld": func(doc string) template.JS { return template.JS(doc) },
		"add":    func(a, b int) int { return a + b },
	}
}

func (rd *renderer) parse() (*template.Template, map[string]*template.Template, error) {
	root, err := template.New("_root").Funcs(funcMap()).ParseFS(rd.fsys, "layouts/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, nil, fmt.Errorf("parse layouts: %w", err)
	}
	files, err := fs.Glob(rd.fsys, "pages/*.tmpl")
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no page templates found")
	}
	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		clone, err := root.Clone()
		if err != nil {
			return nil, nil, err
		}
		if _, err := clone.ParseFS(rd.fsys, file); err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = clone
	}
	return root, pages, nil
}

func (rd *renderer) current() (*template.Template, map[string]*template.Template, error) {
	if rd.reload {
		return rd.parse()
	}
	return rd.root, rd.pages, nil
}

// page renders pages/<name>.tmpl inside the base layout.
func (rd *renderer) page(w http.ResponseWriter, status int, name string, data any) error {
	_, pages, err := rd.current()
	if err != nil {
		return err
	}
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return write(w, status, t, "base", data)
}

// fragment renders one partial template for an htmx swap.
func (rd *renderer) fragment(w http.ResponseWriter, status int, name string, data any) error {
	root, _, err := rd.current()
	if err != nil {
		return err
	}
	return write(w, status, root, name, data)
}

// execute renders a partial into out without touching response headers.
func (rd *renderer) execute(out io.Writer, name string, data any) error {
	root, _, err := rd.current()
	if err != nil {
		return err
	}
	return root.ExecuteTemplate(out, name, data)
}

func write(w http.ResponseWriter, status int, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
