package leaderboarddomain

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

func solved(day, score int) Outcome {
	s := score
	return Outcome{UserID: "u", PuzzleDate: time.Date(2025, 6, day, 12, 0, 0, 0, time.UTC), Solved: true, Score: &s}
}

func failed(day int) Outcome {
	return Outcome{UserID: "u", PuzzleDate: time.Date(2025, 6, day, 12, 0, 0, 0, time.UTC)}
}

func TestScore_FiveOfSevenAtThree(t *testing.T) {
	outcomes := []Outcome{solved(1, 3), solved(2, 3), solved(3, 3), solved(4, 3), solved(5, 3)}

	res := Score(outcomes, 7)

	require.InDelta(t, 60.08163265306122, res.Score, 1e-9)
	require.Equal(t, Metrics{GamesPlayed: 5, SolvedCount: 5, SolveRate: 5.0 / 7.0, AvgGuesses: 3, MaxGames: 7}, res.Metrics)
}

func TestScore_Guards(t *testing.T) {
	t.Run("no games is all zero", func(t *testing.T) {
		require.Equal(t, ScoreResult{}, Score(nil, 7))
	})

	t.Run("only failures keep metrics but score zero", func(t *testing.T) {
		res := Score([]Outcome{failed(1), failed(2)}, 7)
		require.Zero(t, res.Score)
		require.Equal(t, 2, res.Metrics.GamesPlayed)
		require.Zero(t, res.Metrics.SolvedCount)
		require.Equal(t, 7, res.Metrics.MaxGames)
	})

	t.Run("max games below one is raised", func(t *testing.T) {
		res := Score([]Outcome{solved(1, 1)}, 0)
		require.Equal(t, 1, res.Metrics.MaxGames)
		require.InDelta(t, 100.0, res.Score, 1e-9)
	})

	t.Run("more games than max games is clamped", func(t *testing.T) {
		res := Score([]Outcome{solved(1, 1), solved(2, 1), solved(3, 1)}, 2)
		require.Equal(t, 1.0, res.Metrics.SolveRate)
		require.InDelta(t, 100.0, res.Score, 1e-9)
	})

	t.Run("six guesses every day", func(t *testing.T) {
		res := Score([]Outcome{solved(1, 6)}, 1)
		require.InDelta(t, 50.0, res.Score, 1e-9)
	})
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	f := gofakeit.New(42)

	for i := 0; i < 500; i++ {
		maxGames := f.Number(0, 40)
		played := f.Number(0, 45)

		outcomes := make([]Outcome, 0, played)
		for d := 0; d < played; d++ {
			o := Outcome{UserID: "u", PuzzleDate: time.Date(2025, 1, 1+d, 12, 0, 0, 0, time.UTC)}
			if f.Bool() {
				s := f.Number(1, 6)
				o.Solved, o.Score = true, &s
			}
			outcomes = append(outcomes, o)
		}

		res := Score(outcomes, maxGames)
		require.GreaterOrEqual(t, res.Score, 0.0)
		require.LessOrEqual(t, res.Score, 100.0)
		if played == 0 {
			require.Equal(t, Metrics{}, res.Metrics)
		}
	}
}
