package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) TimeOfDay {
	tod, err := ParseTimeOfDay(value)
	require.NoError(t, err)
	return tod
}

func TestTimeCalc(t *testing.T) {
	t.Run(`ParseTimeOfDay accepts strict HH:MM only`, func(t *testing.T) {
		tod, err := ParseTimeOfDay("09:05")
		require.NoError(t, err)
		require.Equal(t, 9, tod.Hour)
		require.Equal(t, 5, tod.Minute)
		require.Equal(t, "09:05", tod.String())

		for _, bad := range []string{"9:05", "24:00", "12:60", "12:5", "1205", "", "12:05:00", " 12:05", "ab:cd"} {
			_, err = ParseTimeOfDay(bad)
			require.ErrorIs(t, err, ErrInvalidTimeFormat, bad)
		}
	})

	t.Run(`HoursBetween`, func(t *testing.T) {
		require.Equal(t, 8.0, HoursBetween(mustTime(t, "09:00"), mustTime(t, "17:00")))
		require.Equal(t, 4.0, HoursBetween(mustTime(t, "22:00"), mustTime(t, "02:00")))
		require.Equal(t, 0.33, HoursBetween(mustTime(t, "10:00"), mustTime(t, "10:20")))
		require.Equal(t, 0.0, HoursBetween(mustTime(t, "10:00"), mustTime(t, "10:00")))
	})

	t.Run(`Span strict and overnight`, func(t *testing.T) {
		_, err := Span(mustTime(t, "22:00"), mustTime(t, "02:00"), false)
		require.ErrorIs(t, err, ErrNonPositiveDuration)

		interval, err := Span(mustTime(t, "22:00"), mustTime(t, "02:00"), true)
		require.NoError(t, err)
		require.Equal(t, 4.0, interval.Hours())

		_, err = Span(mustTime(t, "10:00"), mustTime(t, "10:00"), true)
		require.ErrorIs(t, err, ErrNonPositiveDuration)

		interval, err = Span(mustTime(t, "09:00"), mustTime(t, "12:00"), false)
		require.NoError(t, err)
		require.Equal(t, Interval{Start: 540, End: 720}, interval)
	})

	t.Run(`Overlaps is half-open`, func(t *testing.T) {
		morning := Interval{Start: 540, End: 720}
		require.True(t, morning.Overlaps(Interval{Start: 660, End: 780}))
		require.False(t, morning.Overlaps(Interval{Start: 720, End: 780}))
		require.False(t, morning.Overlaps(Interval{Start: 480, End: 540}))
		require.True(t, morning.Overlaps(Interval{Start: 600, End: 610}))

		night, ok := SpanOf("22:00", "02:00")
		require.True(t, ok)
		require.True(t, night.Overlaps(Interval{Start: 1410, End: 1430}))

		// хвост ночной смены в координатах следующего дня
		tail := night.ShiftDays(-1)
		require.Equal(t, Interval{Start: -120, End: 120}, tail)
		require.True(t, tail.Overlaps(Interval{Start: 60, End: 180}))
		require.False(t, tail.Overlaps(Interval{Start: 120, End: 180}))
	})

	t.Run(`ParseDate and Today`, func(t *testing.T) {
		date, err := ParseDate("2025-01-10")
		require.NoError(t, err)
		require.Equal(t, "2025-01-10", FormatDate(date))

		_, err = ParseDate("10.01.2025")
		require.ErrorIs(t, err, ErrInvalidDate)

		loc := time.FixedZone("IST", 5*3600+1800)
		now := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)
		require.Equal(t, "2025-01-11", FormatDate(Today(now, loc)))
		require.Equal(t, "2025-01-10", FormatDate(Today(now, time.UTC)))
	})
}
