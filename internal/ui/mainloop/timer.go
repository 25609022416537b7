package mainloop

import (
	"sort"
	"sync"
	"time"
)

// TimerID identifies a scheduled timer.
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Time
	fn  func()
}

// TimerWheel is a cooperative timer queue. Nothing fires on its own: the UI
// loop calls Advance with the current time and due callbacks run there, in
// due order, so they can touch UI state directly.
type TimerWheel struct {
	mu     sync.Mutex
	nextID TimerID
	timers []timer
}

// NewTimerWheel returns an empty wheel.
func NewTimerWheel() *TimerWheel {
	return &TimerWheel{}
}

// Schedule registers fn to run at now+delay. A non-positive delay fires on
// the next Advance.
func (w *TimerWheel) Schedule(now time.Time, delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextID++
	t := timer{id: w.nextID, due: now.Add(delay), fn: fn}
	i := sort.Search(len(w.timers), func(i int) bool {
		return w.timers[i].due.After(t.due)
	})
	w.timers = append(w.timers, timer{})
	copy(w.timers[i+1:], w.timers[i:])
	w.timers[i] = t
	return t.id
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (w *TimerWheel) Cancel(id TimerID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, t := range w.timers {
		if t.id == id {
			w.timers = append(w.timers[:i], w.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance runs every timer due at or before now and returns how many ran.
// Timers scheduled by a callback with zero delay wait for the next Advance.
func (w *TimerWheel) Advance(now time.Time) int {
	w.mu.Lock()
	n := 0
	for n < len(w.timers) && !w.timers[n].due.After(now) {
		n++
	}
	due := make([]timer, n)
	copy(due, w.timers[:n])
	w.timers = append(w.timers[:0], w.timers[n:]...)
	w.mu.Unlock()

	for _, t := range due {
		if t.fn != nil {
			t.fn()
		}
	}
	return n
}

// Next returns the due time of the earliest pending timer.
func (w *TimerWheel) Next() (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.timers) == 0 {
		return time.Time{}, false
	}
	return w.timers[0].due, true
}

// Len returns the number of pending timers.
func (w *TimerWheel) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

// Clear drops every pending timer.
func (w *TimerWheel) Clear() {
	w.mu.Lock()
	w.timers = nil
	w.mu.Unlock()
}
