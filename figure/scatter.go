package figure

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ScatterSeries is one group of points.
type ScatterSeries struct {
	Name  string
	Color string
	X, Y  []float64
}

// Scatter renders points of several groups with a legend, as PNG bytes.
func Scatter(series []ScatterSeries, xName, yName string) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}

	graph := chart.Chart{
		Width:  512,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: xName},
		YAxis: chart.YAxis{Name: yName},
	}

	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("%s: %d x values but %d y values", s.Name, len(s.X), len(s.Y))
		}
		if len(s.X) == 0 {
			continue
		}

		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    drawing.ColorFromHex(strings.TrimPrefix(s.Color, "#")),
			},
			XValues: s.X,
			YValues: s.Y,
		})
	}

	if len(graph.Series) == 0 {
		return nil, fmt.Errorf("no points to plot")
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
