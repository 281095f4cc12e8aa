package carousel

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Hub tracks the players of card instances that are currently streaming.
type Hub struct {
	mu      sync.RWMutex
	players map[string]*Player
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{players: map[string]*Player{}}
}

// NewID mints a card instance id.
func (h *Hub) NewID() string {
	return ulid.Make().String()
}

// ValidID reports whether id looks like an id minted by NewID.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// Attach registers p under id until the returned detach func is called. A
// newer attachment under the same id replaces the older one.
func (h *Hub) Attach(id string, p *Player) (detach func()) {
	h.mu.Lock()
	h.players[id] = p
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.players[id] == p {
			delete(h.players, id)
		}
	}
}

// Len returns the number of attached players.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.players)
}

// Select forwards a manual selection to the player attached under id.
func (h *Hub) Select(ctx context.Context, id string, k int) error {
	h.mu.RLock()
	p, ok := h.players[id]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPlayer, id)
	}
	return p.Select(ctx, k)
}
