package leaderboardservice

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []any{"Position", "Player", "User ID", "Score", "Games Played", "Solved", "Solve Rate", "Avg Guesses"}

// ExportLeaderboardXLSX writes the whole board to a single-sheet workbook
// named after the window.
func ExportLeaderboardXLSX(board Leaderboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := board.Window.Title()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range board.Entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			e.Position,
			e.DisplayName,
			e.UserID,
			e.Score,
			e.Metrics.GamesPlayed,
			e.Metrics.SolvedCount,
			e.Metrics.SolveRate,
			e.Metrics.AvgGuesses,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "B", "C", 22); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
