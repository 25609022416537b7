package model

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// postMsg carries work queued from a background goroutine.
type postMsg struct {
	fn func()
}

// Poster queues functions for the Bubble Tea loop. Background goroutines
// (bridge reader, favicon loads) call Post; the model runs each function in
// Update, so UI state is only touched from the loop.
type Poster struct {
	ch       chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewPoster creates a poster with room for buffer queued functions.
func NewPoster(buffer int) *Poster {
	return &Poster{ch: make(chan func(), buffer), done: make(chan struct{})}
}

// Post queues fn. It blocks while the queue is full and drops fn once the
// poster is stopped.
func (p *Poster) Post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case <-p.done:
		return
	default:
	}
	select {
	case p.ch <- fn:
	case <-p.done:
	}
}

// Stop releases blocked and future Post calls.
func (p *Poster) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}

// wait returns a command delivering the next queued function.
func (p *Poster) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-p.ch:
			return postMsg{fn: fn}
		case <-p.done:
			return nil
		}
	}
}
