// Package recurrence translates flat, user-friendly recurrence descriptions
// into the nested pattern/range structure the Graph calendar API requires.
//
// Pattern attributes omitted by the caller (day of month, day of week, week
// index) are derived from the event's start timestamp, interpreted in the
// event's timezone.
package recurrence
