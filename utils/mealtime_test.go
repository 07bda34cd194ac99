package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveMealTime_HintDateAndTime(t *testing.T) {
	ref := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	now := time.Date(2024, 3, 10, 12, 45, 0, 0, time.Local)

	got := ResolveMealTime(now, ref, MealTimeHint{Date: "2024-03-09", Time: "19:30"}, nil)

	assert.Equal(t, time.Date(2024, 3, 9, 19, 30, 0, 0, time.Local), got)
}

func TestResolveMealTime_OverrideWinsOutright(t *testing.T) {
	ref := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	now := time.Date(2024, 3, 10, 12, 45, 0, 0, time.Local)
	override := time.Date(2024, 2, 29, 13, 15, 0, 0, time.Local)

	got := ResolveMealTime(now, ref, MealTimeHint{Date: "2024-03-09", Time: "19:30"}, &override)

	assert.Equal(t, override, got)
}

func TestResolveMealTime_NoHintUsesReferenceDayAtCurrentClock(t *testing.T) {
	ref := time.Date(2024, 3, 8, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, 3, 10, 21, 7, 33, 0, time.Local)

	got := ResolveMealTime(now, ref, MealTimeHint{}, nil)

	assert.Equal(t, time.Date(2024, 3, 8, 21, 7, 0, 0, time.Local), got)
}

func TestResolveMealTime_MalformedHintsIgnored(t *testing.T) {
	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local)

	cases := []struct {
		name string
		hint MealTimeHint
	}{
		{"garbage date", MealTimeHint{Date: "yesterday"}},
		{"impossible date", MealTimeHint{Date: "2024-13-40"}},
		{"hour out of range", MealTimeHint{Time: "24:00"}},
		{"minute out of range", MealTimeHint{Time: "12:60"}},
		{"single digit hour", MealTimeHint{Time: "7:30"}},
		{"empty", MealTimeHint{}},
	}

	want := time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, want, ResolveMealTime(now, ref, tc.hint, nil))
		})
	}
}

func TestResolveMealTime_TimeHintOnly(t *testing.T) {
	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, 3, 10, 14, 2, 0, 0, time.Local)

	got := ResolveMealTime(now, ref, MealTimeHint{Time: "07:15"}, nil)

	assert.Equal(t, time.Date(2024, 3, 10, 7, 15, 0, 0, time.Local), got)
}

func TestResolveMealTime_DateHintOnlyKeepsCurrentClock(t *testing.T) {
	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, 3, 10, 14, 2, 0, 0, time.Local)

	got := ResolveMealTime(now, ref, MealTimeHint{Date: "2024-03-01"}, nil)

	assert.Equal(t, time.Date(2024, 3, 1, 14, 2, 0, 0, time.Local), got)
}
