package pipeline

import (
	"sync"
	"time"
)

// DefaultDebounce is the trailing-edge delay used by the interactive viewer
// for container resizes and source file changes.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single trailing call.
// Each Trigger restarts the delay; fn runs once the burst goes quiet.
//
// A Debouncer is safe for concurrent use. The zero value is not usable;
// construct with NewDebouncer.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given delay.
// A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, replacing any pending call.
// fn runs on a timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call. It does not wait for a running fn.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
