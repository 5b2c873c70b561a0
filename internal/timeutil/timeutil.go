package timeutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates (YYYY-MM-DD).
	DateLayout = "2006-01-02"

	// DateTimeLayout is the wire format for civil datetimes without offset,
	// as used by the Microsoft Graph dateTimeTimeZone shape.
	DateTimeLayout = "2006-01-02T15:04:05"

	// DisplayLayout is the human-readable format used in tool summaries.
	DisplayLayout = "Mon, 02 Jan 2006 3:04 PM"
)

// ParseDate parses a YYYY-MM-DD date at midnight in the named IANA zone.
func ParseDate(date, timeZone string) (time.Time, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timeZone, err)
	}

	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return t, nil
}

// ParseDateTime parses a civil datetime (YYYY-MM-DDTHH:MM:SS) in the named
// IANA zone. Graph start/end datetimes carry no offset; the zone is supplied
// separately, so the parse must happen in that zone rather than the host zone.
func ParseDateTime(datetime, timeZone string) (time.Time, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timeZone, err)
	}

	t, err := time.ParseInLocation(DateTimeLayout, datetime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q (expected YYYY-MM-DDTHH:MM:SS): %w", datetime, err)
	}
	return t, nil
}

// DayWindow returns the instants bounding the window [startDate 00:00,
// endDate+1 day 00:00) in the named zone. The end bound is extended by one
// day so that a query for a single date covers that entire day.
func DayWindow(startDate, endDate, timeZone string) (time.Time, time.Time, error) {
	start, err := ParseDate(startDate, timeZone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
	}

	end, err := ParseDate(endDate, timeZone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
	}

	return start, end.AddDate(0, 0, 1), nil
}

// FormatInZone formats an instant for display in the named zone. If the zone
// cannot be loaded the instant's own location is used.
func FormatInZone(t time.Time, timeZone string) string {
	if loc, err := time.LoadLocation(timeZone); err == nil {
		t = t.In(loc)
	}
	return t.Format(DisplayLayout)
}
