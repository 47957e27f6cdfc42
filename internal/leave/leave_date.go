package leave

import (
	"strings"
	"time"

	leaveerrors "go-hris-leave/internal/leave/errors"
)

const (
	dateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// ParseCalendarDate returns UTC midnight of the calendar day written in v.
// RFC3339 input keeps its own calendar day; the time of day is dropped.
func ParseCalendarDate(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, leaveerrors.InvalidDate(field, v)
	}
	return truncateToDate(t), nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DurationDays counts the days of the inclusive range [start, end].
func DurationDays(start, end time.Time) int {
	return int((end.Unix()-start.Unix())/secondsPerDay) + 1
}
