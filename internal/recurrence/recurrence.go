package recurrence

import (
	"fmt"
	"time"

	"outlook-calendar-mcp/internal/graph"
	"outlook-calendar-mcp/internal/timeutil"
)

// PatternType tags the cyclic rule of a flat recurrence description.
type PatternType string

// Pattern types accepted on the inbound path. Monthly and Yearly are legacy
// aliases kept for callers that predate the absolute/relative split.
const (
	Daily           PatternType = "daily"
	Weekly          PatternType = "weekly"
	Monthly         PatternType = "monthly"
	Yearly          PatternType = "yearly"
	AbsoluteMonthly PatternType = "absoluteMonthly"
	RelativeMonthly PatternType = "relativeMonthly"
	AbsoluteYearly  PatternType = "absoluteYearly"
	RelativeYearly  PatternType = "relativeYearly"
)

// PatternTypes lists every accepted pattern type, in schema order.
var PatternTypes = []PatternType{
	Daily, Weekly, Monthly, Yearly,
	AbsoluteMonthly, RelativeMonthly, AbsoluteYearly, RelativeYearly,
}

// Valid reports whether t is an accepted pattern type.
func (t PatternType) Valid() bool {
	for _, known := range PatternTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RangeType tags the bound of a recurrence: when the series stops.
type RangeType string

// Range types accepted on the inbound path.
const (
	NoEnd    RangeType = "noEnd"
	EndDate  RangeType = "endDate"
	Numbered RangeType = "numbered"
)

// RangeTypes lists every accepted range type, in schema order.
var RangeTypes = []RangeType{EndDate, NoEnd, Numbered}

// Valid reports whether t is an accepted range type.
func (t RangeType) Valid() bool {
	return t == NoEnd || t == EndDate || t == Numbered
}

// Description is the flat, user-facing recurrence form: a pattern tag with
// optional per-pattern attributes, and a range tag with its bound.
type Description struct {
	Type     PatternType
	Interval int

	// Weekly
	DaysOfWeek []string

	// Absolute monthly
	MonthDay int

	// Relative monthly
	WeekDay   string
	WeekIndex string

	Range RangeDescription
}

// RangeDescription is the flat range form.
type RangeDescription struct {
	Type        RangeType
	EndDate     string
	Occurrences int
}

// Translate converts a flat description into the nested pattern/range
// structure the upstream calendar API requires. Pattern attributes the caller
// omitted are derived from the event start, which must already be expressed
// in the event's timezone.
func Translate(d Description, start time.Time, timeZone string) (*graph.PatternedRecurrence, error) {
	if d.Type == "" {
		return nil, fmt.Errorf("recurrence_type is required for recurring events")
	}
	if !d.Type.Valid() {
		return nil, fmt.Errorf("invalid recurrence_type %q", d.Type)
	}

	interval := d.Interval
	if interval == 0 {
		interval = 1
	}
	if interval < 0 {
		return nil, fmt.Errorf("recurrence_interval must be a positive integer, got %d", d.Interval)
	}

	pattern := graph.RecurrencePattern{
		Type:     string(d.Type),
		Interval: interval,
	}

	switch d.Type {
	case Daily, Yearly, AbsoluteYearly, RelativeYearly:
		// Type and interval alone are accepted by the upstream.

	case Weekly:
		if len(d.DaysOfWeek) > 0 {
			days := make([]string, len(d.DaysOfWeek))
			for i, day := range d.DaysOfWeek {
				parsed, err := ParseWeekday(day)
				if err != nil {
					return nil, fmt.Errorf("days_of_week: %w", err)
				}
				days[i] = string(parsed)
			}
			pattern.DaysOfWeek = days
		} else {
			pattern.DaysOfWeek = []string{string(WeekdayOf(start))}
		}

	case AbsoluteMonthly, Monthly:
		pattern.Type = string(AbsoluteMonthly)
		if d.MonthDay > 0 {
			pattern.DayOfMonth = d.MonthDay
		} else {
			pattern.DayOfMonth = start.Day()
		}

	case RelativeMonthly:
		if d.WeekDay != "" {
			parsed, err := ParseWeekday(d.WeekDay)
			if err != nil {
				return nil, fmt.Errorf("week_day: %w", err)
			}
			pattern.DaysOfWeek = []string{string(parsed)}
		} else {
			pattern.DaysOfWeek = []string{string(WeekdayOf(start))}
		}
		if d.WeekIndex != "" {
			pattern.Index = d.WeekIndex
		} else {
			pattern.Index = string(indexForStart(start))
		}
	}

	rng, err := translateRange(d.Range, start, timeZone)
	if err != nil {
		return nil, err
	}

	return &graph.PatternedRecurrence{
		Pattern: pattern,
		Range:   *rng,
	}, nil
}

// translateRange builds the range half of the nested structure, validating
// the cross-field constraints the flat form allows callers to violate.
func translateRange(r RangeDescription, start time.Time, timeZone string) (*graph.RecurrenceRange, error) {
	if r.Type == "" {
		return nil, fmt.Errorf("recurrence_range_type is required for recurring events")
	}
	if !r.Type.Valid() {
		return nil, fmt.Errorf("invalid recurrence_range_type %q", r.Type)
	}

	startDate := start.Format(timeutil.DateLayout)
	rng := &graph.RecurrenceRange{
		Type:               string(r.Type),
		StartDate:          startDate,
		RecurrenceTimeZone: timeZone,
	}

	switch r.Type {
	case EndDate:
		if r.EndDate == "" {
			return nil, fmt.Errorf("recurrence_end_date is required when recurrence_range_type is %q", EndDate)
		}
		if _, err := time.Parse(timeutil.DateLayout, r.EndDate); err != nil {
			return nil, fmt.Errorf("invalid recurrence_end_date %q (expected YYYY-MM-DD): %w", r.EndDate, err)
		}
		// ISO dates order lexicographically.
		if r.EndDate < startDate {
			return nil, fmt.Errorf("recurrence_end_date %s is before the event start date %s", r.EndDate, startDate)
		}
		rng.EndDate = r.EndDate

	case Numbered:
		if r.Occurrences <= 0 {
			return nil, fmt.Errorf("recurrence_occurrences must be a positive integer when recurrence_range_type is %q", Numbered)
		}
		rng.NumberOfOccurrences = r.Occurrences

	case NoEnd:
		// No bound.
	}

	return rng, nil
}
