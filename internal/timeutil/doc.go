// Package timeutil provides date and datetime parsing in named IANA zones.
//
// The Graph calendar API exchanges civil datetimes without UTC offsets,
// paired with a separate timeZone field. All parsing here is explicit about
// the zone so that derived values (weekday, day of month) never depend on the
// host's local zone.
package timeutil
