package leaderboarddomain

import (
	"cmp"
	"slices"
)

// Candidate is a player eligible for a leaderboard together with the
// outcomes that fall inside the window.
type Candidate struct {
	UserID      string
	DisplayName string
	Outcomes    []Outcome
}

// RankedEntry is one row of a leaderboard. Position is 1-based.
type RankedEntry struct {
	Position    int
	UserID      string
	DisplayName string
	Score       float64
	Metrics     Metrics
}

// Rank scores every candidate, drops those scoring zero and orders the rest
// by score, then solve rate (both descending), then user id.
func Rank(candidates []Candidate, maxGames int) []RankedEntry {
	entries := make([]RankedEntry, 0, len(candidates))
	for _, c := range candidates {
		res := Score(c.Outcomes, maxGames)
		if res.Score <= 0 {
			continue
		}
		entries = append(entries, RankedEntry{
			UserID:      c.UserID,
			DisplayName: c.DisplayName,
			Score:       res.Score,
			Metrics:     res.Metrics,
		})
	}

	slices.SortFunc(entries, func(a, b RankedEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Metrics.SolveRate, a.Metrics.SolveRate); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}
