package port

import "context"

// URLOpener opens a resolved destination. self requests the current tab
// instead of a new one.
type URLOpener interface {
	OpenURL(ctx context.Context, rawURL string, self bool) error
}
