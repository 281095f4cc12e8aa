// Package download spaces out the per-model downloads of a collection.
package download

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Space-Banane/peakprinting/internal/catalog"
)

// DefaultStagger is the offset between two consecutive model downloads.
const DefaultStagger = 300 * time.Millisecond

// Step is one scheduled model download.
type Step struct {
	Index   int
	ModelID string
	URL     string
	Delay   time.Duration
}

// DelayMillis is Delay in whole milliseconds, as rendered into pages.
func (s Step) DelayMillis() int64 { return s.Delay.Milliseconds() }

// Orchestrator plans and fires staggered downloads.
type Orchestrator struct {
	Stagger time.Duration
	// AfterFunc schedules f after d. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func())
}

// New returns an orchestrator with the default stagger.
func New() *Orchestrator {
	return &Orchestrator{Stagger: DefaultStagger}
}

func (o *Orchestrator) stagger() time.Duration {
	if o == nil || o.Stagger <= 0 {
		return DefaultStagger
	}
	return o.Stagger
}

// Plan returns one step per model in collection order, model i delayed by i × Stagger.
func (o *Orchestrator) Plan(col catalog.Collection) []Step {
	steps := make([]Step, 0, len(col.Models))
	for i, m := range col.Models {
		steps = append(steps, Step{
			Index:   i,
			ModelID: m.ID,
			URL:     col.FileURL(m),
			Delay:   time.Duration(i) * o.stagger(),
		})
	}
	return steps
}

// Trigger schedules fire for every step and returns immediately. Scheduled
// steps cannot be cancelled and completion is not reported.
func (o *Orchestrator) Trigger(col catalog.Collection, fire func(Step)) int {
	after := func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	if o != nil && o.AfterFunc != nil {
		after = o.AfterFunc
	}
	steps := o.Plan(col)
	for _, s := range steps {
		s := s
		after(s.Delay, func() { fire(s) })
	}
	return len(steps)
}

// Fetch runs fn for every step with the same stagger and waits for all of
// them. The first error cancels the context passed to the remaining steps.
func (o *Orchestrator) Fetch(ctx context.Context, col catalog.Collection, fn func(context.Context, Step) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range o.Plan(col) {
		s := s
		g.Go(func() error {
			if s.Delay > 0 {
				timer := time.NewTimer(s.Delay)
				defer timer.Stop()
				select {
				case <-gctx.Done():
					return gctx.Err()
				case <-timer.C:
				}
			}
			return fn(gctx, s)
		})
	}
	return g.Wait()
}
