package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func ms(t time.Time) *int64 {
	v := t.UnixMilli()
	return &v
}

func TestElapsedHours(t *testing.T) {
	in := time.Date(2024, 1, 10, 9, 0, 0, 0, jakarta)
	out := time.Date(2024, 1, 10, 17, 30, 0, 0, jakarta)

	assert.Equal(t, 8.5, ElapsedHours(ms(in), ms(out)))
	assert.Equal(t, 0.0, ElapsedHours(nil, ms(out)))
	assert.Equal(t, 0.0, ElapsedHours(ms(in), nil))
	assert.Equal(t, 0.0, ElapsedHours(nil, nil))
}

func TestElapsedHours_NeverNegative(t *testing.T) {
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, jakarta)
	for _, delta := range []time.Duration{-48 * time.Hour, -time.Minute, -time.Millisecond, 0, time.Millisecond, 3 * time.Hour} {
		got := ElapsedHours(ms(base), ms(base.Add(delta)))
		assert.GreaterOrEqual(t, got, 0.0, "delta %s", delta)
	}
}

func TestOvertime(t *testing.T) {
	cases := []struct {
		elapsed float64
		target  float64
		closed  bool
		want    float64
	}{
		{8.5, 8, true, 0.5},
		{8, 8, true, 0},
		{7.9, 8, true, 0},
		{12, 8, false, 0},
		{0, 8, true, 0},
		{10, 6, true, 4},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Overtime(c.elapsed, c.target, c.closed), 1e-9, "%+v", c)
	}
}

func TestOvertimeHours_OpenDay(t *testing.T) {
	in := time.Date(2024, 1, 10, 1, 0, 0, 0, jakarta)
	assert.Equal(t, 0.0, OvertimeHours(ms(in), nil, 8))
}

func TestOvertimeHours_BasicDay(t *testing.T) {
	in := time.Date(2024, 1, 10, 9, 0, 0, 0, jakarta)
	out := time.Date(2024, 1, 10, 17, 30, 0, 0, jakarta)
	assert.InDelta(t, 0.5, OvertimeHours(ms(in), ms(out), 8), 1e-9)
}

func TestCalendar_DayKey_SameLocalDay(t *testing.T) {
	cal := NewCalendar(jakarta)

	early := time.Date(2024, 1, 10, 0, 5, 0, 0, jakarta)
	late := time.Date(2024, 1, 10, 23, 55, 0, 0, jakarta)

	assert.Equal(t, "2024-01-10", cal.DayKey(early))
	assert.Equal(t, cal.DayKey(early), cal.DayKey(late))
	assert.Equal(t, cal.DayKey(early), cal.DayKey(early))
}

func TestCalendar_DayKey_NoUTCShift(t *testing.T) {
	cal := NewCalendar(jakarta)
	// 00:30 local is still the previous day in UTC.
	instant := time.Date(2024, 1, 10, 0, 30, 0, 0, jakarta)
	assert.Equal(t, "2024-01-09", instant.UTC().Format(DayKeyLayout))
	assert.Equal(t, "2024-01-10", cal.DayKey(instant))
}

func TestCalendar_MondayOf(t *testing.T) {
	cal := NewCalendar(jakarta)
	start := time.Date(2024, 1, 1, 13, 45, 0, 0, jakarta) // a Monday

	for i := 0; i < 21; i++ {
		d := start.AddDate(0, 0, i)
		monday := cal.MondayOf(d)

		assert.Equal(t, time.Monday, monday.Weekday(), "day %s", d)
		assert.Equal(t, 0, monday.Hour())
		assert.Equal(t, 0, monday.Minute())
		assert.Equal(t, monday, cal.MondayOf(monday), "idempotent for %s", d)
		assert.False(t, monday.After(d))
		assert.Less(t, d.Sub(monday), 7*24*time.Hour)
	}
}

func TestCalendar_MondayOf_Sunday(t *testing.T) {
	cal := NewCalendar(jakarta)
	sunday := time.Date(2024, 1, 14, 22, 0, 0, 0, jakarta)
	assert.Equal(t, "2024-01-08", cal.DayKey(cal.MondayOf(sunday)))
}

func TestCalendar_WeekDays(t *testing.T) {
	cal := NewCalendar(jakarta)
	days := cal.WeekDays(time.Date(2024, 1, 12, 8, 0, 0, 0, jakarta))
	assert.Equal(t, []string{
		"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11",
		"2024-01-12", "2024-01-13", "2024-01-14",
	}, days)
}

func TestCalendar_ParseDayKey(t *testing.T) {
	cal := NewCalendar(jakarta)

	got, err := cal.ParseDayKey("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", cal.DayKey(got))

	_, err = cal.ParseDayKey("29/02/2024")
	assert.Error(t, err)
}

func TestCalendar_ClockTime(t *testing.T) {
	cal := NewCalendar(jakarta)
	assert.Equal(t, "-", cal.ClockTime(nil))
	assert.Equal(t, "09:05", cal.ClockTime(ms(time.Date(2024, 1, 10, 9, 5, 0, 0, jakarta))))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8.50", FormatHours(8.5))
	assert.Equal(t, "0.00", FormatHours(0))
	assert.Equal(t, "1.33", FormatHours(4.0/3.0))
}

func TestParseOffset(t *testing.T) {
	loc, err := ParseOffset("+07:00")
	require.NoError(t, err)
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*3600, offset)

	loc, err = ParseOffset("-03:30")
	require.NoError(t, err)
	_, offset = time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -(3*3600 + 30*60), offset)

	loc, err = ParseOffset("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = ParseOffset("Asia/Jakarta")
	assert.Error(t, err)
}

func TestParseOffset_Table(t *testing.T) {
	valid := []struct {
		in     string
		offset int
	}{
		{"+07:00", 7 * 3600},
		{"+7", 7 * 3600},
		{"-05:00", -5 * 3600},
		{"+05:45", 5*3600 + 45*60},
		{"+14:00", 14 * 3600},
		{"-00:30", -30 * 60},
		{"UTC", 0},
		{"z", 0},
	}
	for _, c := range valid {
		loc, err := ParseOffset(c.in)
		require.NoError(t, err, c.in)
		_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
		assert.Equal(t, c.offset, offset, c.in)
	}

	for _, in := range []string{
		"+-05:00",
		"-07:-30",
		"++07:00",
		"+07:+30",
		"+15:00",
		"+07:60",
		"+07:5",
		"+07:",
		"+:30",
		"+",
		"-",
		"+007:00",
		"+ 7:00",
		"07:00",
		"+07:00:00",
	} {
		_, err := ParseOffset(in)
		assert.Error(t, err, in)
	}
}

func TestTrimHours(t *testing.T) {
	assert.Equal(t, "8", TrimHours(8))
	assert.Equal(t, "7.5", TrimHours(7.5))
	assert.Equal(t, "6.33", TrimHours(6.333))
}
