package favicon

import (
	"context"
	"time"

	"github.com/bnema/fsearch/internal/application/port"
)

// Service loads favicons through the cache, fetching on a miss.
type Service struct {
	cache   *Cache
	fetcher *Fetcher
}

var _ port.FaviconLoader = (*Service)(nil)

// NewService creates a favicon service. An empty cacheDir disables the
// disk tier.
func NewService(cacheDir string, timeout time.Duration) *Service {
	return &Service{
		cache:   NewCache(cacheDir),
		fetcher: NewFetcher(timeout),
	}
}

// Load returns favicon bytes for faviconURL. Empty results mean the row
// keeps its placeholder icon.
func (s *Service) Load(ctx context.Context, faviconURL string) ([]byte, error) {
	if faviconURL == "" {
		return nil, nil
	}
	if data, ok := s.cache.Get(faviconURL); ok {
		return data, nil
	}

	data, err := s.fetcher.Fetch(ctx, faviconURL)
	if err != nil {
		return nil, err
	}
	s.cache.Set(faviconURL, data)
	return data, nil
}

// Close flushes pending disk writes.
func (s *Service) Close() {
	s.cache.Close()
}
