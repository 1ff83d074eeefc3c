package leaderboarddomain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
)

var ErrInvalidWindow = errors.New("invalid leaderboard window")

// Window is the period a leaderboard is computed over.
type Window int

const (
	WindowWeekly Window = iota
	WindowMonthly
	WindowAllTime
)

// ParseWindow accepts the command and URL spellings of a window.
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "week":
		return WindowWeekly, nil
	case "monthly", "month":
		return WindowMonthly, nil
	case "all", "alltime", "all-time", "all_time":
		return WindowAllTime, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
}

func (w Window) String() string {
	switch w {
	case WindowWeekly:
		return "weekly"
	case WindowMonthly:
		return "monthly"
	case WindowAllTime:
		return "all-time"
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// Title is the heading shown above a rendered leaderboard.
func (w Window) Title() string {
	switch w {
	case WindowWeekly:
		return "Weekly"
	case WindowMonthly:
		return "Monthly"
	case WindowAllTime:
		return "All Time"
	}
	return w.String()
}

// Bounds is the inclusive range of puzzle dates present in the store.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the store had no outcomes at all.
func (b Bounds) Empty() bool {
	return b.Start.IsZero() || b.End.IsZero()
}

// LatestPuzzle is the newest puzzle date that can have results at now.
// Results are posted the morning after, so today's puzzle is never scored.
func LatestPuzzle(now time.Time, loc *time.Location) time.Time {
	return puzzledate.AddDays(puzzledate.Today(now, loc), -1)
}

// Range is the inclusive puzzle-date range the window covers at now (in
// loc). Weekly and Monthly end on the latest puzzle date and start on the
// Monday or the 1st of that date's week or month. AllTime spans the global
// bounds.
func (w Window) Range(now time.Time, loc *time.Location, bounds Bounds) (time.Time, time.Time) {
	latest := LatestPuzzle(now, loc)

	switch w {
	case WindowWeekly:
		return puzzledate.AddDays(latest, -daysSinceMonday(latest)), latest
	case WindowMonthly:
		return puzzledate.AddDays(latest, 1-latest.Day()), latest
	case WindowAllTime:
		if bounds.Empty() {
			return latest, latest
		}
		return puzzledate.Normalize(bounds.Start), puzzledate.Normalize(bounds.End)
	}
	return latest, latest
}

// MaxGames is the number of puzzles a perfect attendee could have played in
// the window. It is never below 1.
func (w Window) MaxGames(now time.Time, loc *time.Location, timelineLen int) int {
	latest := LatestPuzzle(now, loc)

	var n int
	switch w {
	case WindowWeekly:
		n = daysSinceMonday(latest) + 1
	case WindowMonthly:
		n = latest.Day()
	case WindowAllTime:
		n = timelineLen
	}
	return max(n, 1)
}

// Monday is day zero.
func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
