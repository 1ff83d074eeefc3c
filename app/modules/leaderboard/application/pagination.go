package leaderboardservice

import (
	"fmt"
	"strings"

	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
)

const (
	PageSize  = 10
	PageColor = 0x5781ff
)

var medals = [...]string{"🥇", "🥈", "🥉"}

// LeaderboardPage is one rendered page of a leaderboard. Page is 1-based.
type LeaderboardPage struct {
	Window     leaderboarddomain.Window
	Page       int
	TotalPages int
	Entries    []leaderboarddomain.RankedEntry
	Embed      discord.Embed
}

// TotalPages is the page count for n entries; an empty board has one page.
func TotalPages(n int) int {
	return max(1, (n+PageSize-1)/PageSize)
}

// RenderLeaderboardPage slices out page and renders it as an embed. Pages
// outside 1..TotalPages are clamped.
func RenderLeaderboardPage(board Leaderboard, page int) LeaderboardPage {
	total := TotalPages(len(board.Entries))
	page = min(max(page, 1), total)

	lo := (page - 1) * PageSize
	hi := min(lo+PageSize, len(board.Entries))
	entries := board.Entries[lo:hi]

	embed := discord.Embed{
		Title:  board.Window.Title() + " Wordle Leaderboard",
		Color:  PageColor,
		Footer: &discord.EmbedFooter{Text: fmt.Sprintf("Page %d/%d", page, total)},
	}
	if len(entries) == 0 {
		embed.Description = "No results recorded for this period."
	} else {
		embed.Description = fmt.Sprintf("%s to %s, %d games possible",
			board.Start.Format("02/01/2006"), board.End.Format("02/01/2006"), board.MaxGames)
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, FormatEntry(e))
		}
		embed.Fields = []discord.EmbedField{{Name: "Rankings", Value: strings.Join(lines, "\n")}}
	}

	return LeaderboardPage{
		Window:     board.Window,
		Page:       page,
		TotalPages: total,
		Entries:    entries,
		Embed:      embed,
	}
}

// FormatEntry renders one leaderboard line.
func FormatEntry(e leaderboarddomain.RankedEntry) string {
	prefix := fmt.Sprintf("#%d", e.Position)
	if e.Position >= 1 && e.Position <= len(medals) {
		prefix = medals[e.Position-1]
	}
	return fmt.Sprintf("%s %s: %.2f (%d/%d solved, avg %.2f)",
		prefix, e.DisplayName, e.Score, e.Metrics.SolvedCount, e.Metrics.MaxGames, e.Metrics.AvgGuesses)
}
