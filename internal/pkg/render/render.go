// Package render draws chart descriptors as PNG images.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Renderer interface {
	RenderPNG(c entity.Chart) ([]byte, error)
}

type chartRenderer struct {
	width  int
	height int
}

func NewRenderer(width, height int) Renderer {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}
	return &chartRenderer{width: width, height: height}
}

var errNothingToDraw = errors.New("nothing to draw")

// RenderPNG never fails on degenerate data: empty descriptors and renderer
// errors fall back to a placeholder image.
func (r *chartRenderer) RenderPNG(c entity.Chart) ([]byte, error) {
	if c.Empty || (c.Kind == entity.ChartHeatmap && c.Placeholder != "") {
		return r.placeholder(c.Title, c.Placeholder)
	}

	data, err := r.draw(c)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"chart": c.Name,
			"error": err,
		}).Warn("Chart rendering fell back to placeholder")
		return r.placeholder(c.Title, "No data to display")
	}
	return data, nil
}

func (r *chartRenderer) draw(c entity.Chart) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("chart renderer panicked: %v", rec)
		}
	}()

	switch c.Kind {
	case entity.ChartBar, entity.ChartGroupedBar:
		return r.drawBars(c)
	case entity.ChartHistogram:
		return r.drawHistogram(c)
	case entity.ChartHeatmap:
		return r.drawHeatmap(c)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", c.Kind)
	}
}

func (r *chartRenderer) drawBars(c entity.Chart) ([]byte, error) {
	var bars []chart.Value
	var total float64
	grouped := len(c.Series) > 1

	if grouped {
		// bars are laid out group by group, one bar per series
		for i := range c.Series[0].Data {
			for _, s := range c.Series {
				p := s.Data[i]
				bars = append(bars, chart.Value{
					Label: p.Label + " " + s.Name,
					Value: p.Value,
					Style: fill(s.Color),
				})
				total += p.Value
			}
		}
	} else if len(c.Series) == 1 {
		for _, p := range c.Series[0].Data {
			bars = append(bars, chart.Value{Label: p.Label, Value: p.Value, Style: fill(c.Series[0].Color)})
			total += p.Value
		}
	}
	if len(bars) == 0 || total == 0 {
		return nil, errNothingToDraw
	}

	barWidth := (r.width - 120) / (len(bars) + 1)
	if barWidth > 80 {
		barWidth = 80
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bc := chart.BarChart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *chartRenderer) drawHistogram(c entity.Chart) ([]byte, error) {
	if len(c.Bins) == 0 {
		return nil, errNothingToDraw
	}

	// step outline of the bins, filled down to zero
	xs := make([]float64, 0, len(c.Bins)*4)
	ys := make([]float64, 0, len(c.Bins)*4)
	for _, b := range c.Bins {
		xs = append(xs, b.Lo, b.Lo, b.Hi, b.Hi)
		ys = append(ys, 0, float64(b.Count), float64(b.Count), 0)
	}

	color := hex("#4C72B0")
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "count",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 1,
				FillColor:   color.WithAlpha(120),
			},
		},
	}

	if len(c.Density) > 1 {
		kx := make([]float64, len(c.Density))
		ky := make([]float64, len(c.Density))
		for i, p := range c.Density {
			kx[i], ky[i] = p.X, p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "density",
			XValues: kx,
			YValues: ky,
			Style:   chart.Style{StrokeColor: color, StrokeWidth: 2},
		})
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.XLabel},
		YAxis:      chart.YAxis{Name: c.YLabel},
		Series:     series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fill(color string) chart.Style {
	c := hex(color)
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

func hex(color string) drawing.Color {
	if color == "" {
		color = "#4C72B0"
	}
	return drawing.ColorFromHex(strings.TrimPrefix(color, "#"))
}
