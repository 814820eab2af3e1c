package browse

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a typed query is fetched.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces bursts of query edits.
//
// Each edit calls Touch and schedules a timer for Delay; when a timer fires, Settle with its
// sequence number reports the query to fetch. Only the timer of the latest edit settles,
// and it settles once.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	seq     uint64
	query   string
	settled bool
}

// NewDebouncer returns a debouncer with delay, or [DefaultDebounce] when delay is not positive.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration { return d.delay }

// Touch records query as the latest edit and returns its sequence number.
func (d *Debouncer) Touch(query string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.query = query
	d.settled = false
	return d.seq
}

// Settle returns the latest query if seq is the latest edit and has not settled yet.
func (d *Debouncer) Settle(seq uint64) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq || d.settled {
		return "", false
	}
	d.settled = true
	return d.query, true
}

// Seq returns the sequence number of the latest edit.
func (d *Debouncer) Seq() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq
}
