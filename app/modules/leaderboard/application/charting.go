package leaderboardservice

import (
	"bytes"
	"strconv"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette colors a rendered chart.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultPalette matches the Wordle greens.
var DefaultPalette = ChartPalette{
	Background:  drawing.ColorFromHex("121213"),
	PrimaryLine: drawing.ColorFromHex("538d4e"),
	AccentLine:  drawing.ColorFromHex("b59f3b"),
	TextColor:   drawing.ColorFromHex("d7dadc"),
}

// failedRow is where X/6 results are plotted, one row below six guesses.
const failedRow = leaderboarddomain.MaxGuesses + 1

// RenderGuessChart plots guesses per played day of a timeline as a PNG.
// Failed days sit on the X row and missing days are skipped.
func RenderGuessChart(timeline []leaderboarddomain.TimelineEntry, palette ChartPalette) ([]byte, error) {
	var xValues []time.Time
	var yValues []float64
	for _, e := range timeline {
		switch e.Status {
		case leaderboarddomain.StatusSolved:
			xValues = append(xValues, e.Date)
			yValues = append(yValues, float64(*e.Score))
		case leaderboarddomain.StatusFailed:
			xValues = append(xValues, e.Date)
			yValues = append(yValues, failedRow)
		}
	}
	// A time axis needs two distinct points.
	if len(xValues) < 2 {
		return renderNoDataPlaceholder(palette)
	}

	ticks := make([]chart.Tick, 0, failedRow)
	for n := 1; n <= leaderboarddomain.MaxGuesses; n++ {
		ticks = append(ticks, chart.Tick{Value: float64(n), Label: strconv.Itoa(n)})
	}
	ticks = append(ticks, chart.Tick{Value: failedRow, Label: "X"})

	series := chart.TimeSeries{
		Name:    "Guesses",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentLine,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Puzzle date",
			ValueFormatter: chart.TimeValueFormatterWithFormat(time.DateOnly),
			Style:          chart.Style{FontColor: palette.TextColor},
		},
		YAxis: chart.YAxis{
			Name:  "Guesses",
			Style: chart.Style{FontColor: palette.TextColor},
			// Fewer guesses plot higher.
			Range: &chart.ContinuousRange{Min: 1, Max: failedRow, Descending: true},
			Ticks: ticks,
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderNoDataPlaceholder draws straight onto a renderer; a chart.Chart
// refuses to render without a series.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "Not enough games to chart"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.TextColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
