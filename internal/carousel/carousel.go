// Package carousel implements the timed image carousel shown on model cards.
//
// Carousel is the plain state: an index into a fixed image list. Player owns a
// Carousel on a single goroutine, advances it on a ticker and applies manual
// selections sent to it. Hub lets HTTP handlers reach the Player of a card
// instance that is currently streaming to a browser.
package carousel

import (
	"errors"
	"fmt"
	"time"
)

// DefaultInterval is the automatic advance period.
const DefaultInterval = 3000 * time.Millisecond

var (
	// ErrOutOfRange is returned for a manual selection outside [0, Len).
	ErrOutOfRange = errors.New("carousel: index out of range")
	// ErrStopped is returned when selecting on a Player whose Run has returned.
	ErrStopped = errors.New("carousel: player stopped")
	// ErrNoPlayer is returned by Hub.Select when no player is attached under the id.
	ErrNoPlayer = errors.New("carousel: no player attached")
)

// Carousel is a cyclic index over an ordered image list. It is not safe for
// concurrent use; Player serialises access.
type Carousel struct {
	images []string
	index  int
}

// New builds a carousel starting at index 0.
func New(images []string) *Carousel {
	cp := make([]string, len(images))
	copy(cp, images)
	return &Carousel{images: cp}
}

// Len is the number of images.
func (c *Carousel) Len() int { return len(c.images) }

// Index is the currently displayed position.
func (c *Carousel) Index() int { return c.index }

// Images returns a copy of the image list.
func (c *Carousel) Images() []string {
	out := make([]string, len(c.images))
	copy(out, c.images)
	return out
}

// Current returns the displayed image, or "" when the list is empty.
func (c *Carousel) Current() string {
	if len(c.images) == 0 {
		return ""
	}
	return c.images[c.index]
}

// Animated reports whether the carousel has anything to cycle through.
func (c *Carousel) Animated() bool { return len(c.images) > 1 }

// Advance moves to the next image, wrapping around.
func (c *Carousel) Advance() {
	if len(c.images) <= 1 {
		return
	}
	c.index = (c.index + 1) % len(c.images)
}

// Select jumps straight to index k.
func (c *Carousel) Select(k int) error {
	if k < 0 || k >= len(c.images) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, k, len(c.images))
	}
	c.index = k
	return nil
}
