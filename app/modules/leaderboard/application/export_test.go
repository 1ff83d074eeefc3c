package leaderboardservice

import (
	"bytes"
	"testing"

	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportLeaderboardXLSX(t *testing.T) {
	data, err := ExportLeaderboardXLSX(boardOf(3))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Monthly"}, f.GetSheetList())

	rows, err := f.GetRows("Monthly")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, "Position", rows[0][0])
	require.Equal(t, "Avg Guesses", rows[0][7])
	require.Equal(t, []string{"1", "player1", "1", "99"}, rows[1][:4])
	require.Equal(t, "3", rows[3][0])
}

func TestExportLeaderboardXLSX_Empty(t *testing.T) {
	data, err := ExportLeaderboardXLSX(Leaderboard{Window: leaderboarddomain.WindowAllTime})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("All Time")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
