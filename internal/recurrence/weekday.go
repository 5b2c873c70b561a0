package recurrence

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Weekday is a day-of-week name in the casing the upstream calendar API
// expects (leading uppercase).
type Weekday string

// Weekday values, indexed sunday=0 through saturday=6.
const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// weekdays is a fixed table indexed by time.Weekday (Sunday = 0).
var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the weekday of the given instant. The instant must
// already be in the event's timezone.
func WeekdayOf(t time.Time) Weekday {
	return weekdays[t.Weekday()]
}

// NormalizeWeekday rewrites a caller-supplied day name with exactly the first
// rune uppercased and the remainder lowercased ("monday" -> "Monday").
func NormalizeWeekday(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	runes := []rune(lower)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ParseWeekday normalizes a caller-supplied day name and validates it against
// the seven weekday values.
func ParseWeekday(s string) (Weekday, error) {
	normalized := Weekday(NormalizeWeekday(s))
	for _, day := range weekdays {
		if normalized == day {
			return day, nil
		}
	}
	return "", fmt.Errorf("invalid day of week %q", s)
}

// WeekIndex is an ordinal week-of-month position within a recurrence pattern.
type WeekIndex string

// WeekIndex values accepted by the upstream.
const (
	First  WeekIndex = "first"
	Second WeekIndex = "second"
	Third  WeekIndex = "third"
	Fourth WeekIndex = "fourth"
	Last   WeekIndex = "last"
)

// ordinals maps week-of-month 1..4 to its index value.
var ordinals = [4]WeekIndex{First, Second, Third, Fourth}

// indexForStart derives the week-of-month ordinal from the start date. A day
// whose weekday does not occur again in the same month is "last"; otherwise
// the ordinal is ceil(day/7).
func indexForStart(start time.Time) WeekIndex {
	day := start.Day()
	if day+7 > lastDayOfMonth(start) {
		return Last
	}

	weekOfMonth := (day + 6) / 7
	if weekOfMonth >= 1 && weekOfMonth <= len(ordinals) {
		return ordinals[weekOfMonth-1]
	}
	return Last
}

// lastDayOfMonth returns the number of days in the month of t.
func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
