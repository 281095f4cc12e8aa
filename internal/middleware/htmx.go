package middleware

import (
	"context"
	"net/http"
	"strings"
)

// HTMXInfo captures request metadata from HX-* headers.
type HTMXInfo struct {
	IsHTMX         bool
	IsBoosted      bool
	CurrentURL     string
	Target         string
	TriggerID      string
	HistoryRestore bool
}

// HTMX inspects HX-* headers and annotates the context.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := HTMXInfo{
			IsHTMX:         strings.EqualFold(r.Header.Get("HX-Request"), "true"),
			IsBoosted:      strings.EqualFold(r.Header.Get("HX-Boosted"), "true"),
			CurrentURL:     r.Header.Get("HX-Current-URL"),
			Target:         r.Header.Get("HX-Target"),
			TriggerID:      r.Header.Get("HX-Trigger"),
			HistoryRestore: strings.EqualFold(r.Header.Get("HX-History-Restore-Request"), "true"),
		}
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyHTMX, info)))
	})
}

// HTMXInfoFromContext retrieves HTMX metadata; returns zero value if absent.
func HTMXInfoFromContext(ctx context.Context) HTMXInfo {
	v, _ := ctx.Value(ctxKeyHTMX).(HTMXInfo)
	return v
}

// IsHTMX returns whether the request wants a fragment. History restores and
// boosted navigations get full pages.
func IsHTMX(ctx context.Context) bool {
	info := HTMXInfoFromContext(ctx)
	return info.IsHTMX && !info.HistoryRestore && !info.IsBoosted
}

// RequireHTMX answers 404 to anything but htmx requests so fragment routes
// are not reachable by direct navigation.
func RequireHTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsHTMX(r.Context()) {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
