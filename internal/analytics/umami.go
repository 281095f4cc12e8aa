package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultUmamiTimeout = 5 * time.Second

// UmamiClient sends events to an Umami-compatible collector
// (POST {endpoint}/api/send). Sends happen in the background.
type UmamiClient struct {
	endpoint  string
	websiteID string
	hostname  string
	http      *http.Client
	logger    *zap.Logger
	userAgent string
	wg        sync.WaitGroup
}

// UmamiOption customises the client.
type UmamiOption func(*UmamiClient)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) UmamiOption {
	return func(u *UmamiClient) {
		if c != nil {
			u.http = c
		}
	}
}

// WithLogger sets the logger used for delivery failures.
func WithLogger(l *zap.Logger) UmamiOption {
	return func(u *UmamiClient) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithHostname sets the hostname reported when the page carries none.
func WithHostname(h string) UmamiOption {
	return func(u *UmamiClient) { u.hostname = strings.TrimSpace(h) }
}

// NewUmamiClient returns nil when endpoint or websiteID is empty, so callers
// can pass the result through Or.
func NewUmamiClient(endpoint, websiteID string, opts ...UmamiOption) *UmamiClient {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	websiteID = strings.TrimSpace(websiteID)
	if endpoint == "" || websiteID == "" {
		return nil
	}
	u := &UmamiClient{
		endpoint:  endpoint,
		websiteID: websiteID,
		http:      &http.Client{Timeout: defaultUmamiTimeout},
		logger:    zap.NewNop(),
		userAgent: "Mozilla/5.0 (compatible; peakprinting-web)",
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type umamiPayload struct {
	Website  string `json:"website"`
	Hostname string `json:"hostname,omitempty"`
	URL      string `json:"url,omitempty"`
	Referrer string `json:"referrer,omitempty"`
	Language string `json:"language,omitempty"`
	Name     string `json:"name"`
}

type umamiRequest struct {
	Type    string       `json:"type"`
	Payload umamiPayload `json:"payload"`
}

// Track queues the event for delivery and returns immediately.
func (u *UmamiClient) Track(ctx context.Context, event string) {
	if u == nil {
		return
	}
	page := PageFrom(ctx)
	body := umamiRequest{
		Type: "event",
		Payload: umamiPayload{
			Website:  u.websiteID,
			Hostname: firstNonEmpty(page.Hostname, u.hostname),
			URL:      page.URL,
			Referrer: page.Referrer,
			Language: page.Language,
			Name:     event,
		},
	}
	sendCtx := context.WithoutCancel(ctx)
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		ctx, cancel := context.WithTimeout(sendCtx, defaultUmamiTimeout)
		defer cancel()
		if err := u.send(ctx, body); err != nil {
			u.logger.Warn("analytics delivery failed", zap.String("event", event), zap.Error(err))
		}
	}()
}

// Wait blocks until every queued event has been attempted.
func (u *UmamiClient) Wait() {
	if u == nil {
		return
	}
	u.wg.Wait()
}

func (u *UmamiClient) send(ctx context.Context, body umamiRequest) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	endpoint, err := url.JoinPath(u.endpoint, "api", "send")
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", u.userAgent)
	resp, err := u.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("analytics: collector status %d", resp.StatusCode)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
