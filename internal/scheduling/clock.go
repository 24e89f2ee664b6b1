package scheduling

import (
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// NormalizeShiftTimes builds absolute start and end timestamps from a shift
// date and two clock strings. An end clock that sorts before the start clock
// belongs to the following calendar day, so overnight shifts always satisfy
// end > start.
func NormalizeShiftTimes(date, startClock, endClock string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "date", Reason: "must be formatted as YYYY-MM-DD"}
	}

	st, err := time.Parse(clockLayout, startClock)
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "startTime", Reason: "must be formatted as HH:MM"}
	}
	et, err := time.Parse(clockLayout, endClock)
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "endTime", Reason: "must be formatted as HH:MM"}
	}

	if endClock == startClock {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "endTime", Reason: "must differ from start time"}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), st.Hour(), st.Minute(), 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), et.Hour(), et.Minute(), 0, 0, time.UTC)
	if endClock < startClock {
		end = end.AddDate(0, 0, 1)
	}

	return start, end, nil
}

// weekBounds returns the Monday 00:00 starting the week containing day and
// the Monday 00:00 starting the next week.
func weekBounds(day time.Time) (time.Time, time.Time) {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}

// dateOf truncates a timestamp to midnight of its calendar day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// windowWithin reports whether the requested window is fully contained in the
// pattern's [start, end) interval. Clock strings are fixed-width HH:MM, so
// lexicographic order is chronological order.
func windowWithin(window domain.TimeWindow, pattern domain.AvailabilityPattern) bool {
	return pattern.StartTime <= window.Start && window.End <= pattern.EndTime
}
