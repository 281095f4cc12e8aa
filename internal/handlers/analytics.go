package handlers

import "strings"

// Analytics holds client instrumentation configuration surfaced to templates.
// The script tag is omitted when either field is empty.
type Analytics struct {
	ScriptURL string // e.g. https://umami.example.com/script.js
	WebsiteID string // data-website-id
}

// Enabled reports whether the analytics script should be emitted.
func (a Analytics) Enabled() bool {
	return strings.TrimSpace(a.ScriptURL) != "" && strings.TrimSpace(a.WebsiteID) != ""
}
