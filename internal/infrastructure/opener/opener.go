// Package opener delivers resolved search URLs to a tab browser and,
// optionally, to the desktop's default browser.
package opener

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pkg/browser"

	"github.com/bnema/fsearch/internal/application/port"
	"github.com/bnema/fsearch/internal/logging"
)

// ErrNoTarget is returned when neither a tab browser nor the system
// browser is configured.
var ErrNoTarget = errors.New("no browser to open urls in")

// Opener implements port.URLOpener.
type Opener struct {
	tabs       port.TabBrowser
	system     bool
	openSystem func(string) error
}

var _ port.URLOpener = (*Opener)(nil)

// Option customizes an Opener.
type Option func(*Opener)

// WithSystemBrowser also hands every URL to the desktop browser.
func WithSystemBrowser(enabled bool) Option {
	return func(o *Opener) { o.system = enabled }
}

// WithSystemOpener replaces the function used to launch the desktop browser.
func WithSystemOpener(fn func(string) error) Option {
	return func(o *Opener) { o.openSystem = fn }
}

// New creates an Opener. tabs may be nil when only the system browser is used.
func New(tabs port.TabBrowser, opts ...Option) *Opener {
	o := &Opener{tabs: tabs, openSystem: openWithDesktop}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func openWithDesktop(rawURL string) error {
	// xdg-open and friends write to the terminal the UI is drawing on.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(rawURL)
}

// OpenURL opens rawURL in the active tab when self is set, else in a new one.
func (o *Opener) OpenURL(ctx context.Context, rawURL string, self bool) error {
	log := logging.FromContext(ctx)

	if o.tabs == nil && !o.system {
		return ErrNoTarget
	}

	if o.tabs != nil {
		tab, err := o.tabs.Open(ctx, rawURL, self)
		if err != nil {
			return fmt.Errorf("open tab: %w", err)
		}
		log.Debug().Int("tab_id", int(tab.ID)).Bool("self", self).Msg("url opened in tab")
	}

	if o.system {
		if err := o.openSystem(rawURL); err != nil {
			return fmt.Errorf("open system browser: %w", err)
		}
		log.Debug().Str("url", rawURL).Msg("url handed to system browser")
	}
	return nil
}
