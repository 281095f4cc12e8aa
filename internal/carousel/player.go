package carousel

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Ticker is the part of time.Ticker the player needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker wraps time.NewTicker.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Option configures a Player.
type Option func(*Player)

// WithInterval overrides the automatic advance period.
func WithInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTicker overrides the ticker constructor, mainly for tests.
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(p *Player) {
		if fn != nil {
			p.newTicker = fn
		}
	}
}

type selectReq struct {
	index int
	done  chan error
}

// Player drives one Carousel. All reads and writes of the carousel happen on
// the goroutine executing Run.
type Player struct {
	c         *Carousel
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	selects   chan selectReq
	stopped   chan struct{}
	running   atomic.Bool
}

// NewPlayer creates a player for the given images.
func NewPlayer(images []string, opts ...Option) *Player {
	p := &Player{
		c:         New(images),
		interval:  DefaultInterval,
		newTicker: NewStdTicker,
		selects:   make(chan selectReq),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var errAlreadyRunning = errors.New("carousel: player already running")

// Run advances the carousel every interval until ctx is cancelled, and applies
// manual selections without resetting the ticker. onChange is called on the Run
// goroutine after each transition. With fewer than two images no ticker is
// created. Run may only be called once.
func (p *Player) Run(ctx context.Context, onChange func(index int)) error {
	if !p.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	defer close(p.stopped)
	if onChange == nil {
		onChange = func(int) {}
	}

	var tick <-chan time.Time
	if p.c.Animated() {
		t := p.newTicker(p.interval)
		defer t.Stop()
		tick = t.C()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			p.c.Advance()
			onChange(p.c.Index())
		case req := <-p.selects:
			err := p.c.Select(req.index)
			req.done <- err
			if err == nil {
				onChange(p.c.Index())
			}
		}
	}
}

// Select asks the running player to jump to index k and waits for the result.
func (p *Player) Select(ctx context.Context, k int) error {
	req := selectReq{index: k, done: make(chan error, 1)}
	select {
	case p.selects <- req:
	case <-p.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len is the number of images; it never changes after construction.
func (p *Player) Len() int { return p.c.Len() }
