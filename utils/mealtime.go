package utils

import (
	"strconv"
	"time"
)

// MealTimeHint is the optional relative date/time the AI extracts from a
// free-text description ("ieri alle 19:30"). Either field may be empty or
// malformed; malformed values are ignored.
type MealTimeHint struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD
	Time string `json:"time,omitempty"` // HH:MM
}

// ResolveMealTime merges the day the user was viewing (reference), the AI's
// extracted hint and an explicit user override into one instant:
//
//  1. a non-nil override wins outright;
//  2. otherwise the result starts at reference's calendar day with the
//     current wall-clock hour and minute, then a valid hint date replaces
//     year/month/day and a valid hint time replaces hour/minute.
//
// The resolver is a pure transform: it never errors on bad hints and never
// applies the no-future-meals policy — callers reject future instants before
// persisting.
func ResolveMealTime(now, reference time.Time, hint MealTimeHint, override *time.Time) time.Time {
	if override != nil {
		return *override
	}

	loc := reference.Location()
	res := time.Date(reference.Year(), reference.Month(), reference.Day(),
		now.Hour(), now.Minute(), 0, 0, loc)

	if d, err := time.ParseInLocation(DayKeyLayout, hint.Date, loc); err == nil {
		res = time.Date(d.Year(), d.Month(), d.Day(), res.Hour(), res.Minute(), 0, 0, loc)
	}
	if hh, mm, ok := parseClock(hint.Time); ok {
		res = time.Date(res.Year(), res.Month(), res.Day(), hh, mm, 0, 0, loc)
	}
	return res
}

// parseClock accepts strictly "HH:MM" with 00-23 hours and 00-59 minutes.
func parseClock(s string) (hh, mm int, ok bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	hh, err := strconv.Atoi(s[:2])
	if err != nil || hh < 0 || hh > 23 {
		return 0, 0, false
	}
	mm, err = strconv.Atoi(s[3:])
	if err != nil || mm < 0 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}
