// Package puzzledate normalizes timestamps to puzzle calendar days.
//
// A puzzle date is stored as 12:00 UTC of its calendar day so that equality
// of normalized values is equality of days.
package puzzledate

import "time"

// Hour is the fixed time-of-day every puzzle date is normalized to.
const Hour = 12

// Normalize keeps t's calendar day (as seen in t's own location) and moves
// it to Hour o'clock UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), Hour, 0, 0, 0, time.UTC)
}

// FromMessage derives the puzzle date of a results post. Results are posted
// the morning after the puzzle day, so the date is the post's local calendar
// day minus one.
func FromMessage(createdAt time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := createdAt.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()-1, Hour, 0, 0, 0, time.UTC)
}

// Today is the normalized calendar day of now in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Normalize(now.In(loc))
}

// AddDays shifts a normalized date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, n)
}

// DaysBetween counts calendar days from start to end; negative when end is
// before start.
func DaysBetween(start, end time.Time) int {
	return int(Normalize(end).Sub(Normalize(start)) / (24 * time.Hour))
}

// Key formats a date as YYYY-MM-DD.
func Key(t time.Time) string {
	return Normalize(t).Format(time.DateOnly)
}

// Parse reads a YYYY-MM-DD key back into a normalized date.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, key)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}
