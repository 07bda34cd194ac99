package utils

import "time"

const DayKeyLayout = "2006-01-02"

// LocalDayKey returns the YYYY-MM-DD key of the calendar day the instant
// falls in, in the instant's location. Every piece of daily bucketing goes
// through this one function so a timezone change cannot shift records by a
// day in one code path but not another.
func LocalDayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// DayStart returns local midnight of the day t falls in.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last representable instant of the day, for inclusive
// BETWEEN-style queries.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).Add(24*time.Hour - time.Nanosecond)
}

// NextLocalMidnight returns the first instant of the following day. Used as
// the expiry of anything cached "for today".
func NextLocalMidnight(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// SameLocalDay reports whether two instants share a calendar day when viewed
// in the location of the second argument.
func SameLocalDay(t, day time.Time) bool {
	return LocalDayKey(t.In(day.Location())) == LocalDayKey(day)
}
