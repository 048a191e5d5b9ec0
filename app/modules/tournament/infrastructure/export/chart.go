package export

import (
	"bytes"
	"math"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette holds the colors used by rendered charts.
type Palette struct {
	Background drawing.Color
	Bar        drawing.Color
	Text       drawing.Color
}

// DefaultPalette is the scoreboard green theme.
var DefaultPalette = Palette{
	Background: drawing.ColorFromHex("f4f7f2"),
	Bar:        drawing.ColorFromHex("2e6b3f"),
	Text:       drawing.ColorFromHex("1f2a1f"),
}

// RenderGroupChart draws a bar per team of the group with its current net
// score, in leaderboard order. Teams with nothing recorded yet are left out.
func RenderGroupChart(teams []tournamentdomain.Team, group tournamentdomain.Group, palette Palette) ([]byte, error) {
	var bars []chart.Value
	for _, st := range tournamentdomain.GroupLeaderboard(teams, group) {
		if st.Gross == 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: st.Team.Name,
			Value: st.Net,
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		})
	}
	if len(bars) == 0 {
		return renderPlaceholder("No scores entered for Group "+string(group), palette)
	}

	graph := chart.BarChart{
		Title:    "Group " + string(group) + " Net",
		Width:    800,
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		TitleStyle: chart.Style{
			FontColor: palette.Text,
		},
		XAxis: chart.Style{
			FontColor: palette.Text,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: palette.Text,
			},
			// BarChart cannot derive a range from a single value.
			Range: netRange(bars),
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func netRange(bars []chart.Value) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	hi = math.Ceil(hi*1.1) + 1
	lo = math.Floor(lo * 1.1)
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func renderPlaceholder(msg string, palette Palette) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		// Chart refuses to render without a series.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
