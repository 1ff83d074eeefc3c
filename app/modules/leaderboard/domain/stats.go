package leaderboarddomain

import "time"

// Distribution counts solved games per guess count; index 0 holds failures.
type Distribution [MaxGuesses + 1]int

// Failed is the number of X/6 results.
func (d Distribution) Failed() int { return d[0] }

// Guesses is the number of games solved in exactly n guesses.
func (d Distribution) Guesses(n int) int {
	if n < 1 || n > MaxGuesses {
		return 0
	}
	return d[n]
}

// PlayerStats summarizes a player's whole history.
type PlayerStats struct {
	UserID        string
	Result        ScoreResult
	Distribution  Distribution
	CurrentStreak int
	MaxStreak     int
	LastPlayed    time.Time
}

// GuessDistribution tallies outcomes by guess count.
func GuessDistribution(outcomes []Outcome) Distribution {
	var d Distribution
	for _, o := range outcomes {
		if !o.Solved || o.Score == nil {
			d[0]++
			continue
		}
		if s := *o.Score; s >= 1 && s <= MaxGuesses {
			d[s]++
		}
	}
	return d
}

// Streaks walks a timeline and returns the run of solved days ending on its
// last day and the longest run anywhere in it. Failed and missing days both
// break a run.
func Streaks(timeline []TimelineEntry) (current, longest int) {
	run := 0
	for _, e := range timeline {
		if e.Status != StatusSolved {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return run, longest
}

// LastPlayed is the latest puzzle date among outcomes, zero when there are none.
func LastPlayed(outcomes []Outcome) time.Time {
	var last time.Time
	for _, o := range outcomes {
		if o.PuzzleDate.After(last) {
			last = o.PuzzleDate
		}
	}
	return last
}

// BuildPlayerStats scores a player's full history against the global
// timeline bounds.
func BuildPlayerStats(userID string, outcomes []Outcome, bounds Bounds) PlayerStats {
	stats := PlayerStats{
		UserID:       userID,
		Distribution: GuessDistribution(outcomes),
		LastPlayed:   LastPlayed(outcomes),
	}
	if bounds.Empty() {
		return stats
	}

	timeline := BuildTimeline(outcomes, bounds.Start, bounds.End)
	stats.Result = Score(outcomes, len(timeline))
	stats.CurrentStreak, stats.MaxStreak = Streaks(timeline)
	return stats
}
