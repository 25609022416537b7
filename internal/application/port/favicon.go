package port

import "context"

// FaviconLoader fetches favicon bytes for a tab row. An error or empty
// result means the placeholder icon is shown.
type FaviconLoader interface {
	Load(ctx context.Context, faviconURL string) ([]byte, error)
}
