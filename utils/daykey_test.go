package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalDayKey(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 59, 59, 0, time.Local)
	assert.Equal(t, "2024-03-09", LocalDayKey(ts))
	assert.Equal(t, "2024-03-10", LocalDayKey(ts.Add(time.Second)))
}

func TestDayWindow(t *testing.T) {
	ts := time.Date(2024, 3, 9, 13, 22, 5, 123, time.Local)

	start := DayStart(ts)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local), start)

	end := DayEnd(ts)
	assert.Equal(t, "2024-03-09", LocalDayKey(end))
	assert.Equal(t, "2024-03-10", LocalDayKey(end.Add(time.Nanosecond)))
}

func TestNextLocalMidnight(t *testing.T) {
	ts := time.Date(2024, 12, 31, 18, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), NextLocalMidnight(ts))
}

func TestSameLocalDay(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local)
	assert.True(t, SameLocalDay(time.Date(2024, 3, 9, 23, 0, 0, 0, time.Local), day))
	assert.False(t, SameLocalDay(time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), day))
}
