package leaderboarddomain

import (
	"time"

	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
)

// Outcome is one player's result for one puzzle day.
type Outcome struct {
	UserID     string
	PuzzleDate time.Time
	Solved     bool
	// Score is nil iff Solved is false.
	Score *int
}

// Status of a single day in a player's timeline.
type Status string

const (
	StatusSolved  Status = "solved"
	StatusFailed  Status = "failed"
	StatusMissing Status = "missing"
)

// TimelineEntry is one calendar day of a player's history.
type TimelineEntry struct {
	Date   time.Time
	Status Status
	Score  *int
}

// BuildTimeline lays a player's outcomes over every calendar day from start
// to end inclusive. Days without an outcome are StatusMissing and outcomes
// outside the range are ignored. end before start yields nil.
func BuildTimeline(outcomes []Outcome, start, end time.Time) []TimelineEntry {
	days := puzzledate.DaysBetween(start, end)
	if days < 0 {
		return nil
	}

	byDay := make(map[string]Outcome, len(outcomes))
	for _, o := range outcomes {
		byDay[puzzledate.Key(o.PuzzleDate)] = o
	}

	first := puzzledate.Normalize(start)
	timeline := make([]TimelineEntry, 0, days+1)
	for i := 0; i <= days; i++ {
		day := first.AddDate(0, 0, i)
		entry := TimelineEntry{Date: day, Status: StatusMissing}

		if o, ok := byDay[puzzledate.Key(day)]; ok {
			if o.Solved {
				entry.Status = StatusSolved
				entry.Score = o.Score
			} else {
				entry.Status = StatusFailed
			}
		}
		timeline = append(timeline, entry)
	}
	return timeline
}

// InRange keeps the outcomes whose puzzle date lies in [start, end].
func InRange(outcomes []Outcome, start, end time.Time) []Outcome {
	lo, hi := puzzledate.Normalize(start), puzzledate.Normalize(end)

	var out []Outcome
	for _, o := range outcomes {
		d := puzzledate.Normalize(o.PuzzleDate)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		out = append(out, o)
	}
	return out
}
