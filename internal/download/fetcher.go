package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

// Fetcher saves step URLs into a local directory.
type Fetcher struct {
	Dir       string
	Client    *http.Client
	UserAgent string
}

// NewFetcher builds a fetcher writing into dir.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{
		Dir:       dir,
		Client:    &http.Client{Timeout: 60 * time.Second},
		UserAgent: "peak-fetch",
	}
}

// FileName derives the local file name from the last URL path segment.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("download: parse url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("download: no file name in %q", rawURL)
	}
	return name, nil
}

// Save downloads the step URL and returns the written path.
func (f *Fetcher) Save(ctx context.Context, s Step) (string, error) {
	name, err := FileName(s.URL)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: get %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: get %s: status %d", s.URL, resp.StatusCode)
	}

	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(f.Dir, name)
	tmp, err := os.CreateTemp(f.Dir, "."+name+".*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return dst, nil
}
