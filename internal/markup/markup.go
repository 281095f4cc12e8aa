// Package markup parses the tiny emphasis syntax used in catalog descriptions.
//
// Text between a pair of angle brackets is emphasized and the brackets are
// dropped: "a <b> c" yields "a ", "b" (emphasized), " c". Everything else,
// line breaks included, is kept verbatim.
package markup

import "strings"

// Fragment is one run of description text.
type Fragment struct {
	Text       string
	Emphasized bool
}

// Parse splits text into plain and emphasized fragments in source order.
// Fragments are byte-exact slices of text, so invalid UTF-8 survives as is.
//
// An unterminated "<" opens a span that runs to the end of the string. A "<"
// inside an open span is part of that span's text and a ">" outside a span is
// plain text.
func Parse(text string) []Fragment {
	var out []Fragment
	add := func(s string, emphasized bool) {
		if s != "" {
			out = append(out, Fragment{Text: s, Emphasized: emphasized})
		}
	}
	for text != "" {
		open := strings.IndexByte(text, '<')
		if open < 0 {
			add(text, false)
			break
		}
		add(text[:open], false)
		text = text[open+1:]
		end := strings.IndexByte(text, '>')
		if end < 0 {
			add(text, true)
			break
		}
		add(text[:end], true)
		text = text[end+1:]
	}
	return out
}

// Plain joins the fragments back together without the delimiters.
func Plain(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return b.String()
}
