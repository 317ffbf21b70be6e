package storefront

import (
	"sync"
	"time"
)

// DefaultSettle is how long the search box must go without a keystroke
// before a request fires.
const DefaultSettle = 500 * time.Millisecond

// Debouncer collapses a burst of triggers into one callback after the
// settle window closes. Safe for concurrent use.
type Debouncer struct {
	settle time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(settle time.Duration) *Debouncer {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Debouncer{settle: settle}
}

// Trigger schedules fn after the settle window, replacing any previously
// scheduled call. Only the last fn of a burst runs.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.settle, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
