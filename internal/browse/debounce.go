package browse

import (
	"strings"
	"time"
)

// SearchDelay is the quiet period before a search is dispatched.
const SearchDelay = 1500 * time.Millisecond

// Ticket identifies one scheduled search dispatch.
type Ticket struct {
	gen  uint64
	text string
}

// Text returns the search text the ticket was scheduled with.
func (t Ticket) Text() string {
	return t.text
}

// Debouncer is a replace-on-reschedule timer for search dispatch. At most one
// ticket is live; scheduling or cancelling invalidates the previous one.
// The event loop owns the clock and calls Claim when Delay has passed.
type Debouncer struct {
	delay   time.Duration
	gen     uint64
	pending *Ticket
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels any pending dispatch and arms a new one for text.
// Blank text arms nothing and returns false.
func (d *Debouncer) Schedule(text string) (Ticket, bool) {
	d.Cancel()
	if strings.TrimSpace(text) == "" {
		return Ticket{}, false
	}
	d.gen++
	t := Ticket{gen: d.gen, text: text}
	d.pending = &t
	return t, true
}

// Cancel drops the pending dispatch, if any.
func (d *Debouncer) Cancel() {
	d.pending = nil
}

// Pending reports whether a dispatch is armed.
func (d *Debouncer) Pending() bool {
	return d.pending != nil
}

// Claim fires t. It succeeds only for the live ticket, which it disarms.
func (d *Debouncer) Claim(t Ticket) (string, bool) {
	if d.pending == nil || d.pending.gen != t.gen {
		return "", false
	}
	d.pending = nil
	return t.text, true
}
