// Package biztime centralizes time handling. All storage and transport
// use UTC; the business timezone is only used for date boundary
// calculations on reporting surfaces.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the default business timezone.
const DefaultTimezone = "Europe/Paris"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at
// startup. An empty tz selects the default.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, auto-initializing with the
// default when Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of t's day in the business timezone,
// converted back to UTC for queries.
func StartOfDayUTC(t time.Time) time.Time {
	bt := t.In(Location())
	return time.Date(bt.Year(), bt.Month(), bt.Day(), 0, 0, 0, 0, Location()).UTC()
}
