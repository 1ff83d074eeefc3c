package leaderboarddomain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)
}

func TestBuildTimeline(t *testing.T) {
	three := 3
	outcomes := []Outcome{
		{UserID: "u", PuzzleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Solved: true, Score: &three},
		{UserID: "u", PuzzleDate: day(4)},
		{UserID: "u", PuzzleDate: day(20), Solved: true, Score: &three},
	}

	got := BuildTimeline(outcomes, day(1), day(5))

	want := []TimelineEntry{
		{Date: day(1), Status: StatusMissing},
		{Date: day(2), Status: StatusSolved, Score: &three},
		{Date: day(3), Status: StatusMissing},
		{Date: day(4), Status: StatusFailed},
		{Date: day(5), Status: StatusMissing},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTimeline_Completeness(t *testing.T) {
	start := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	got := BuildTimeline(nil, start, end)

	require.Len(t, got, 73)
	seen := map[time.Time]bool{}
	for i, e := range got {
		require.False(t, seen[e.Date], "duplicate day %s", e.Date)
		seen[e.Date] = true
		require.False(t, e.Date.Before(start) || e.Date.After(end))
		if i > 0 {
			require.True(t, e.Date.After(got[i-1].Date))
		}
	}
}

func TestBuildTimeline_EndBeforeStart(t *testing.T) {
	require.Empty(t, BuildTimeline(nil, day(5), day(4)))
	require.Len(t, BuildTimeline(nil, day(5), day(5)), 1)
}

func TestInRange(t *testing.T) {
	outcomes := []Outcome{failed(1), failed(2), failed(3), failed(4)}
	got := InRange(outcomes, day(2), day(3))
	require.Equal(t, []Outcome{failed(2), failed(3)}, got)
}
