package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Space-Banane/peakprinting/internal/analytics"
	"github.com/Space-Banane/peakprinting/internal/carousel"
	"github.com/Space-Banane/peakprinting/internal/catalog"
	"github.com/Space-Banane/peakprinting/internal/handlers"
	mw "github.com/Space-Banane/peakprinting/internal/middleware"
)

// carouselCard resolves the card a carousel request refers to.
func (s *server) carouselCard(r *http.Request) (string, handlers.ModelCardView, error) {
	id := chi.URLParam(r, "id")
	if !carousel.ValidID(id) {
		return "", handlers.ModelCardView{}, fmt.Errorf("%w: carousel id %q", catalog.ErrNotFound, id)
	}
	q := r.URL.Query()
	col, m, err := s.catalog.Lookup(q.Get("collection"), q.Get("model"))
	if err != nil {
		return "", handlers.ModelCardView{}, err
	}
	return id, handlers.BuildModelCard(col, m), nil
}

// frame renders the carousel of card at index k.
func frame(id string, card handlers.ModelCardView, k int) (handlers.CarouselView, error) {
	c := carousel.New(card.Images)
	if c.Len() == 0 && k == 0 {
		return handlers.NewCarouselView(id, card, c), nil
	}
	if err := c.Select(k); err != nil {
		return handlers.CarouselView{}, err
	}
	return handlers.NewCarouselView(id, card, c), nil
}

// carouselStream runs the card's player for as long as the browser listens
// and pushes every index change as an "index" server-sent event carrying the
// rendered frame.
func (s *server) carouselStream(w http.ResponseWriter, r *http.Request) {
	id, card, err := s.carouselCard(r)
	if err != nil {
		s.notFound(w, r)
		return
	}
	if len(card.Images) < 2 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		return
	}

	logger := mw.LoggerFrom(r.Context()).With(zap.String("carousel", id))
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	player := carousel.NewPlayer(card.Images, s.carouselOpts...)
	detach := s.hub.Attach(id, player)
	defer detach()

	var buf bytes.Buffer
	err = player.Run(ctx, func(index int) {
		buf.Reset()
		view, err := frame(id, card, index)
		if err == nil {
			err = s.render.execute(&buf, "frag_carousel", view)
		}
		if err == nil {
			err = writeEvent(w, "index", buf.Bytes())
		}
		if err == nil {
			err = rc.Flush()
		}
		if err != nil {
			logger.Debug("carousel stream closed", zap.Error(err))
			cancel()
		}
	})
	if err != nil {
		logger.Warn("carousel player", zap.Error(err))
	}
}

// writeEvent writes one server-sent event; every line of data becomes its
// own data field.
func writeEvent(w io.Writer, event string, data []byte) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "event: %s\n", event)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		fmt.Fprintf(bw, "data: %s\n", sc.Bytes())
	}
	if err := sc.Err(); err != nil {
		return err
	}
	bw.WriteString("\n")
	return bw.Flush()
}

// carouselSelect handles a dot click: it records the click, forwards the
// selection to the live player when one is streaming, and always answers with
// the frame at the chosen index.
func (s *server) carouselSelect(w http.ResponseWriter, r *http.Request) {
	id, card, err := s.carouselCard(r)
	if err != nil {
		s.notFound(w, r)
		return
	}
	k, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		s.badRequest(w, r)
		return
	}
	view, err := frame(id, card, k)
	if err != nil {
		s.badRequest(w, r)
		return
	}
	s.tracker.Track(r.Context(), analytics.EventCarouselDot)

	switch err := s.hub.Select(r.Context(), id, k); {
	case err == nil:
	case errors.Is(err, carousel.ErrNoPlayer), errors.Is(err, carousel.ErrStopped):
		mw.LoggerFrom(r.Context()).Debug("carousel select without live player", zap.String("carousel", id))
	default:
		mw.LoggerFrom(r.Context()).Warn("carousel select", zap.String("carousel", id), zap.Error(err))
	}
	s.renderFragment(w, r, "frag_carousel", view)
}
