// Package analytics is the event-recording port used by page actions.
//
// Every user action that changes page state records one named event. The
// port never fails the caller: when no backend is configured the Nop tracker
// swallows events.
package analytics

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event names recorded by the site. Some spellings are kept as they were
// first published so dashboards keep matching.
const (
	EventContactUs          = "contact_us_cliked"
	EventAddToCart          = "clicked_cart"
	EventSwitchedCurrency   = "switched_currency"
	EventScrolledToPrinters = "scrolled_to_printers_clicked"
	EventClosedRickroll     = "closed_rickroll"
	EventCarouselDot        = "carousel_dot_clicked"
	EventCartTooltip        = "toggled_cart_tooltip"
	EventAccountTooltip     = "toggled_account_tooltip"
)

// ModelDownloadEvent is recorded when a single model download is requested.
func ModelDownloadEvent(modelID string) string { return "download_" + modelID }

// CollectionDownloadEvent is recorded once for a collection-wide download.
func CollectionDownloadEvent(collectionID string) string {
	return "download_collection_" + collectionID
}

// Tracker records named events. Implementations must not block the caller
// for long and must not panic.
type Tracker interface {
	Track(ctx context.Context, event string)
}

// TrackerFunc adapts a function to Tracker.
type TrackerFunc func(ctx context.Context, event string)

// Track calls f.
func (f TrackerFunc) Track(ctx context.Context, event string) { f(ctx, event) }

// Nop discards every event.
type Nop struct{}

// Track does nothing.
func (Nop) Track(context.Context, string) {}

// Or returns t, or Nop when t is nil.
func Or(t Tracker) Tracker {
	if t == nil {
		return Nop{}
	}
	return t
}

// Multi fans an event out to several trackers in order.
func Multi(trackers ...Tracker) Tracker {
	out := make([]Tracker, 0, len(trackers))
	for _, t := range trackers {
		if t != nil {
			out = append(out, t)
		}
	}
	return TrackerFunc(func(ctx context.Context, event string) {
		for _, t := range out {
			t.Track(ctx, event)
		}
	})
}

// LogTracker writes events to a zap logger.
type LogTracker struct {
	Logger *zap.Logger
}

// Track logs the event at info level.
func (l LogTracker) Track(ctx context.Context, event string) {
	logger := l.Logger
	if logger == nil {
		return
	}
	fields := []zap.Field{zap.String("event", event)}
	if page := PageFrom(ctx); page.URL != "" {
		fields = append(fields, zap.String("url", page.URL))
	}
	logger.Info("analytics event", fields...)
}

// Recorder keeps events in memory. It is meant for tests.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// Track appends the event.
func (r *Recorder) Track(_ context.Context, event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type pageKey struct{}

// Page identifies where an event happened.
type Page struct {
	URL      string
	Hostname string
	Referrer string
	Language string
}

// WithPage annotates ctx with the page an event originates from.
func WithPage(ctx context.Context, p Page) context.Context {
	return context.WithValue(ctx, pageKey{}, p)
}

// PageFrom returns the page stored by WithPage, or the zero Page.
func PageFrom(ctx context.Context) Page {
	if ctx == nil {
		return Page{}
	}
	p, _ := ctx.Value(pageKey{}).(Page)
	return p
}
