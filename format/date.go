// Package format renders dashboard values for display: relative dates,
// day counts and status badges.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cast"
)

const (
	// Empty is rendered in place of a missing date.
	Empty = "-"

	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 03:04 PM"
	day            = 24 * time.Hour
)

// Date renders value as "Today", "Yesterday" or "Jan 2, 2006" in the
// local time zone. An empty value renders as [Empty]; a value that is
// not a recognisable date is returned as is.
func Date(value string) string {
	return dateAt(value, time.Now())
}

func dateAt(value string, now time.Time) string {
	if value == "" {
		return Empty
	}

	t, err := parse(value)
	if err != nil {
		return value
	}

	now = now.In(time.Local)
	switch {
	case sameDay(t, now):
		return "Today"
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Yesterday"
	}

	return t.Format(dateLayout)
}

// DateTime renders value as "Jan 2, 2006, 03:04 PM" in the local time zone.
func DateTime(value string) string {
	if value == "" {
		return Empty
	}

	t, err := parse(value)
	if err != nil {
		return value
	}

	return t.Format(dateTimeLayout)
}

// DaysUntil returns the number of days from now until value, rounded up.
// Past dates yield zero or a negative count.
func DaysUntil(value string) (int, error) {
	return daysBetween(value, time.Now(), false)
}

// DaysSince returns the number of days from value until now, rounded up.
func DaysSince(value string) (int, error) {
	return daysBetween(value, time.Now(), true)
}

func daysBetween(value string, now time.Time, since bool) (int, error) {
	t, err := parse(value)
	if err != nil {
		return 0, err
	}

	diff := t.Sub(now)
	if since {
		diff = now.Sub(t)
	}

	return int(math.Ceil(float64(diff) / float64(day))), nil
}

func parse(value string) (time.Time, error) {
	t, err := cast.ToTimeInDefaultLocationE(value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", value, err)
	}

	return t.In(time.Local), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
