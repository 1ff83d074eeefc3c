package leaderboarddomain

const (
	// MaxGuesses is the number of rows on a Wordle board.
	MaxGuesses = 6

	solveWeight      = 50.0
	efficiencyWeight = 50.0
	// A perfect attendee keeps the full skill score; someone who played
	// nothing keeps 70% of it.
	participationFloor = 0.7
	participationShare = 0.3
)

// Metrics are the raw counts and ratios behind a score.
type Metrics struct {
	GamesPlayed int
	SolvedCount int
	SolveRate   float64
	AvgGuesses  float64
	MaxGames    int
}

// ScoreResult is a player's score for one window.
type ScoreResult struct {
	Score   float64
	Metrics Metrics
}

// Score rates a player's outcomes for a window whose perfect attendance is
// maxGames puzzles. The result is always within [0, 100].
//
//	skill = solveRate*50 + ((6 - avgGuesses) / 5) * 50
//	final = skill * (0.7 + 0.3 * gamesPlayed / maxGames)
func Score(outcomes []Outcome, maxGames int) ScoreResult {
	if len(outcomes) == 0 {
		return ScoreResult{}
	}
	maxGames = max(maxGames, 1)

	m := Metrics{GamesPlayed: len(outcomes), MaxGames: maxGames}

	sum := 0
	for _, o := range outcomes {
		if !o.Solved || o.Score == nil {
			continue
		}
		m.SolvedCount++
		sum += *o.Score
	}

	m.SolveRate = ratio(m.SolvedCount, maxGames)
	m.AvgGuesses = float64(sum) / float64(max(1, m.SolvedCount))

	if m.AvgGuesses < 1 || m.AvgGuesses > MaxGuesses {
		return ScoreResult{Metrics: m}
	}

	skill := m.SolveRate*solveWeight + ((MaxGuesses-m.AvgGuesses)/(MaxGuesses-1))*efficiencyWeight
	participation := participationFloor + participationShare*ratio(m.GamesPlayed, maxGames)

	return ScoreResult{Score: skill * participation, Metrics: m}
}

// ratio is n/d clamped to 1.
func ratio(n, d int) float64 {
	if n >= d {
		return 1
	}
	return float64(n) / float64(d)
}
