package booking

import (
	"fmt"
	"strconv"
	"time"
)

// TimeOfDay is a wall-clock time as minutes since midnight. 24:00 is valid
// and marks the end of the day.
type TimeOfDay int

const endOfDay TimeOfDay = 24 * 60

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	if len(raw) != 5 || raw[2] != ':' || !isDigits(raw[:2]) || !isDigits(raw[3:]) {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}
	h, errH := strconv.Atoi(raw[:2])
	m, errM := strconv.Atoi(raw[3:])
	if errH != nil || errM != nil {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}
	return TimeOfDay(h*60 + m), nil
}

func MustParseTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On returns the instant at this wall-clock time on day's date in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, int(t)/60, int(t)%60, 0, 0, loc)
}

// TimeOfDayOf returns the wall-clock time of t in loc.
func TimeOfDayOf(t time.Time, loc *time.Location) TimeOfDay {
	local := t.In(loc)
	return TimeOfDay(local.Hour()*60 + local.Minute())
}

// spanOfDay returns the wall-clock bounds of [start, end) relative to start's
// date. An end at the following midnight maps to 24:00; any later end lies
// outside every window.
func spanOfDay(start, end time.Time, loc *time.Location) (TimeOfDay, TimeOfDay) {
	from := TimeOfDayOf(start, loc)
	sy, sm, sd := start.In(loc).Date()
	ey, em, ed := end.In(loc).Date()
	if sy == ey && sm == em && sd == ed {
		return from, TimeOfDayOf(end, loc)
	}
	next := time.Date(sy, sm, sd+1, 0, 0, 0, 0, loc)
	if end.Equal(next) {
		return from, endOfDay
	}
	return from, endOfDay + 1
}

// StartOfDay truncates t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
