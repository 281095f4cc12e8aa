package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/Space-Banane/peakprinting/internal/analytics"
)

// AnalyticsPage annotates the context with the page an event originates
// from. htmx requests report the page the user is looking at rather than the
// fragment endpoint.
func AnalyticsPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := analytics.Page{
			URL:      r.URL.Path,
			Hostname: hostOnly(r.Host),
			Referrer: r.Referer(),
			Language: primaryLanguage(r.Header.Get("Accept-Language")),
		}
		if info := HTMXInfoFromContext(r.Context()); info.IsHTMX && info.CurrentURL != "" {
			page.URL = pathOf(info.CurrentURL)
		}
		next.ServeHTTP(w, r.WithContext(analytics.WithPage(r.Context(), page)))
	})
}

func hostOnly(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return hostport
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

func primaryLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	return strings.TrimSpace(first)
}
