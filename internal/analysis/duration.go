package analysis

import "time"

// Unit selects the scale for duration metrics.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitHours  Unit = "hours"
	UnitMonths Unit = "months"
)

// daysPerMonth is the average Gregorian month length (365.25 / 12).
const daysPerMonth = 30.4375

// ParseUnit maps a user-supplied unit name onto a Unit, defaulting to days.
func ParseUnit(s string) Unit {
	switch Unit(s) {
	case UnitHours:
		return UnitHours
	case UnitMonths:
		return UnitMonths
	default:
		return UnitDays
	}
}

// Between computes the elapsed duration between two instants in the given
// unit. Returns nil when either instant is missing, and discards (rather than
// clamps) negative spans produced by clock skew or bad data.
func Between(start, end *time.Time, unit Unit) *float64 {
	if start == nil || end == nil {
		return nil
	}
	seconds := end.Sub(*start).Seconds()
	if seconds < 0 {
		return nil
	}
	var value float64
	switch unit {
	case UnitHours:
		value = seconds / 3600.0
	case UnitMonths:
		value = seconds / 86400.0 / daysPerMonth
	default:
		value = seconds / 86400.0
	}
	return &value
}

// AgeAt computes the age of an item created at the given instant, measured
// against a fixed "now" that is sampled once per analysis run so all ages in
// a run are mutually consistent.
func AgeAt(created *time.Time, now time.Time, unit Unit) *float64 {
	return Between(created, &now, unit)
}
