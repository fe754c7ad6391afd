package worktime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DayKeyLayout is the layout of every attendance day-key.
const DayKeyLayout = "2006-01-02"

const millisPerHour = 3_600_000

// Calendar derives day and week keys from instants in one wall-clock location.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a Calendar for loc. A nil loc means time.Local.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

// Location returns the calendar's wall-clock location.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// DayKey returns the YYYY-MM-DD of t on the local wall clock.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.Location()).Format(DayKeyLayout)
}

// ParseDayKey parses a day-key as local midnight.
func (c Calendar) ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, c.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// MondayOf returns local midnight of the Monday of the week containing t.
func (c Calendar) MondayOf(t time.Time) time.Time {
	local := t.In(c.Location())
	offset := (int(local.Weekday()) + 6) % 7
	y, m, d := local.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, c.Location())
}

// WeekDays returns the seven day-keys of the week containing t, Monday first.
func (c Calendar) WeekDays(t time.Time) []string {
	monday := c.MondayOf(t)
	keys := make([]string, 7)
	for i := range keys {
		keys[i] = monday.AddDate(0, 0, i).Format(DayKeyLayout)
	}
	return keys
}

// ClockTime renders an epoch-millisecond stamp as local HH:MM, or "-" when absent.
func (c Calendar) ClockTime(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return time.UnixMilli(*ms).In(c.Location()).Format("15:04")
}

// ElapsedHours is the worked time between two epoch-millisecond stamps.
// It is 0 when either stamp is missing and never negative.
func ElapsedHours(in, out *int64) float64 {
	if in == nil || out == nil {
		return 0
	}
	diff := *out - *in
	if diff < 0 {
		diff = 0
	}
	return float64(diff) / millisPerHour
}

// Overtime is elapsed minus target, floored at zero, for closed days only.
func Overtime(elapsed, target float64, closed bool) float64 {
	if !closed {
		return 0
	}
	return math.Max(0, elapsed-target)
}

// OvertimeHours computes overtime straight from the clock stamps.
func OvertimeHours(in, out *int64, target float64) float64 {
	closed := in != nil && out != nil
	return Overtime(ElapsedHours(in, out), target, closed)
}

// FormatHours renders hours with two decimals.
func FormatHours(hours float64) string {
	return decimal.NewFromFloat(hours).StringFixed(2)
}

// ParseOffset turns "Local", "UTC" or a fixed offset such as "+07:00" into a location.
func ParseOffset(value string) (*time.Location, error) {
	value = strings.TrimSpace(value)
	switch strings.ToUpper(value) {
	case "", "LOCAL":
		return time.Local, nil
	case "UTC", "Z":
		return time.UTC, nil
	}

	sign := 1
	switch value[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("invalid offset %q", value)
	}

	parts := strings.SplitN(value[1:], ":", 2)
	hours, ok := offsetPart(parts[0], 14)
	if !ok {
		return nil, fmt.Errorf("invalid offset %q", value)
	}
	minutes := 0
	if len(parts) == 2 {
		if minutes, ok = offsetPart(parts[1], 59); !ok || len(parts[1]) != 2 {
			return nil, fmt.Errorf("invalid offset %q", value)
		}
	}

	return time.FixedZone("UTC"+value, sign*(hours*3600+minutes*60)), nil
}

// offsetPart parses one or two plain digits no greater than max.
func offsetPart(s string, max int) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > max {
		return 0, false
	}
	return n, true
}

// TrimHours renders hours without trailing zeros, e.g. 8 or 7.5.
func TrimHours(hours float64) string {
	return decimal.NewFromFloat(hours).Round(2).String()
}
