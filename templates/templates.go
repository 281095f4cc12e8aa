// Package templates embeds the html/template sources of the web server.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed layouts/*.tmpl partials/*.tmpl pages/*.tmpl
var files embed.FS

// FS returns the embedded template tree (layouts/, partials/, pages/).
func FS() fs.FS { return files }
