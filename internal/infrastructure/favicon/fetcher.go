// Package favicon fetches and caches tab favicons.
package favicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainurl "github.com/bnema/fsearch/internal/domain/url"
	"github.com/bnema/fsearch/internal/logging"
)

const (
	// DuckDuckGo favicon API URL template, used for tabs that report no icon.
	duckduckgoFaviconURL = "https://icons.duckduckgo.com/ip3/%s.ico"
	// DefaultFetchTimeout bounds a single favicon download.
	DefaultFetchTimeout = 5 * time.Second
	// maxFaviconBytes caps the body read from a favicon response.
	maxFaviconBytes = 512 << 10
)

// Fetcher downloads favicon bytes over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// PageFaviconURL returns the DuckDuckGo icon URL for the host of pageURL,
// or "" when pageURL has no host (about:blank, file paths).
func PageFaviconURL(pageURL string) string {
	host := domainurl.ExtractHost(pageURL)
	if host == "" {
		return ""
	}
	return fmt.Sprintf(duckduckgoFaviconURL, url.PathEscape(host))
}

// Fetch downloads faviconURL. Non-HTTP URLs and non-OK responses yield
// nil bytes without an error so callers fall back to the placeholder.
func (f *Fetcher) Fetch(ctx context.Context, faviconURL string) ([]byte, error) {
	if !strings.HasPrefix(faviconURL, "http://") && !strings.HasPrefix(faviconURL, "https://") {
		return nil, nil
	}

	log := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, faviconURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create favicon request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", faviconURL).Msg("favicon fetch failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", faviconURL).Msg("favicon request returned non-OK status")
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFaviconBytes))
	if err != nil {
		return nil, fmt.Errorf("read favicon response: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	log.Debug().Str("url", faviconURL).Int("bytes", len(data)).Msg("favicon fetched")
	return data, nil
}
