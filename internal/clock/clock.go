// Package clock provides the time source used by the tracker and the
// day-boundary helpers that decide when a new calendar day has begun.
package clock

import (
	"sync"
	"time"

	"github.com/julianstephens/diacare/internal/constants"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// System returns a Clock backed by time.Now in loc. A nil loc means time.Local.
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fake is a settable Clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake frozen at now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Today returns the calendar date of c in YYYY-MM-DD form.
func Today(c Clock) string {
	return c.Now().Format(constants.DateFormat)
}

// Yesterday returns the calendar date before Today(c).
func Yesterday(c Clock) string {
	return c.Now().AddDate(0, 0, -1).Format(constants.DateFormat)
}
