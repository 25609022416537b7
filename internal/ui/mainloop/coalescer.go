// Package mainloop holds the helpers that keep UI state on a single loop:
// posted work is coalesced per key and timers fire cooperatively.
package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks posted onto the UI loop. Only
// the latest task for a key runs, once, when the loop gets to it.
type Coalescer struct {
	mu      sync.Mutex
	pending map[string]func()
	post    func(func())
	stopped bool
}

// NewCoalescer wraps post, which must enqueue fn onto the UI loop.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		pending: make(map[string]func()),
		post:    post,
	}
}

// Post schedules fn under key, replacing any task still waiting for it.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	_, queued := c.pending[key]
	c.pending[key] = fn
	c.mu.Unlock()

	if queued {
		return
	}

	c.post(func() {
		c.mu.Lock()
		fn, ok := c.pending[key]
		delete(c.pending, key)
		stopped := c.stopped
		c.mu.Unlock()

		if ok && !stopped {
			fn()
		}
	})
}

// Pending reports how many keys are waiting to run.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Stop drops queued work and ignores later posts.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	c.stopped = true
	clear(c.pending)
	c.mu.Unlock()
}
