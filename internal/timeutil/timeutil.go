package timeutil

import (
	"time"
	_ "time/tzdata"
)

// DateLayout is the slate date format used in query strings (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// SlateZone is the zone kickoff times and slate dates are expressed in.
const SlateZone = "America/New_York"

// Eastern returns the slate zone, falling back to UTC if it cannot be loaded.
func Eastern() *time.Location {
	loc, err := time.LoadLocation(SlateZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SlateDate is the Eastern calendar date a kickoff belongs to.
func SlateDate(t time.Time) string {
	return FormatDate(t.In(Eastern()))
}
