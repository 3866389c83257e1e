// Package clock formats the dates and timestamps the journal is keyed by.
package clock

import (
	"fmt"
	"time"
)

// DateLayout is the layout of a journal date line.
const DateLayout = "2006-01-02"

// Clock is the source of the current time.
type Clock interface {
	Now() time.Time
}

// System reads the local wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time { return time.Time(f) }

// Stamper renders journal dates and "done" headers.
type Stamper struct {
	AM string
	PM string
}

// NewStamper returns a Stamper using the given period labels.
func NewStamper(am, pm string) Stamper {
	return Stamper{AM: am, PM: pm}
}

// Date formats t as a day section date line.
func (s Stamper) Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Timestamp formats t as "[<period> HH:MM]" using the hour of the day.
// The hour stays on the 24-hour clock; the label only says which half.
func (s Stamper) Timestamp(t time.Time) string {
	period := s.AM
	if t.Hour() >= 12 {
		period = s.PM
	}
	return fmt.Sprintf("[%s %02d:%02d]", period, t.Hour(), t.Minute())
}
