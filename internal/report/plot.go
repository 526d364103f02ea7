package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/agentshift/internal/roi"
)

// Series is a named line on a plot.
type Series struct {
	Name   string
	Values []float64
}

type dash struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisSeparator     = " ┤ "
	colorReset        = "\x1b[0m"
)

var dashes = []dash{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var palette = []string{"\x1b[32m", "\x1b[31m", "\x1b[36m"}

// PlotProjection draws cumulative savings against cumulative tool cost.
// Both lines share one scale so the crossing point is the break-even week.
func PlotProjection(w io.Writer, p roi.Projection, width, height int, forceColor bool) error {
	if len(p.Savings) == 0 {
		return nil
	}
	series := []Series{{Name: "Savings", Values: p.Savings}}
	if hasNonZero(p.Cost) {
		series = append(series, Series{Name: "Tool cost", Values: p.Cost})
	}
	net := p.Net()
	title := fmt.Sprintf("Cumulative value over %d weeks (net %s)", len(p.Savings), WholeMoney(net[len(net)-1]))
	return PlotSeries(w, title, series, width, height, forceColor)
}

// PlotSeries renders series as braille lines on a shared vertical scale.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = nonEmpty(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}

	minVal, maxVal := bounds(series)
	labels := axisLabels(minVal, maxVal, height)
	labelWidth := 0
	for _, l := range labels {
		if n := runewidth.StringWidth(l); n > labelWidth {
			labelWidth = n
		}
	}
	if width <= 0 {
		width = TerminalWidth() - labelWidth - runewidth.StringWidth(axisSeparator)
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	layers := make([][][]uint8, len(series))
	for si, s := range series {
		layers[si] = makeCells(height, width)
		style := dashes[si%len(dashes)]
		values := resample(s.Values, width)
		prevX, prevY := -1, -1
		for x, v := range values {
			px := x * 2
			py := valueToRow(v, minVal, maxVal, height*4)
			plot := func(dx, dy int) {
				if style.on >= style.period || dx%style.period < style.on {
					setDot(layers[si], dx, dy)
				}
			}
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, plot)
			} else {
				plot(px, py)
			}
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, forceColor)
	var out strings.Builder
	if title != "" {
		out.WriteString(title + "\n")
	}
	for y := 0; y < height; y++ {
		out.WriteString(runewidth.FillLeft(labels[y], labelWidth))
		out.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, layer := compose(layers, x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && layer >= 0 {
				out.WriteString(palette[layer%len(palette)])
				out.WriteRune(ch)
				out.WriteString(colorReset)
				continue
			}
			out.WriteRune(ch)
		}
		out.WriteByte('\n')
	}
	out.WriteString(legend(series, useColor))
	out.WriteByte('\n')
	_, err := io.WriteString(w, out.String())
	return err
}

func hasNonZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return true
		}
	}
	return false
}

func nonEmpty(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func bounds(series []Series) (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if minVal > 0 {
		minVal = 0
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		maxVal = minVal + 1
	}
	return minVal, maxVal
}

func axisLabels(minVal, maxVal float64, height int) []string {
	labels := make([]string, height)
	labels[0] = WholeMoney(maxVal)
	if height > 2 {
		labels[height/2] = WholeMoney((minVal + maxVal) / 2)
	}
	if height > 1 {
		labels[height-1] = WholeMoney(minVal)
	}
	return labels
}

func legend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", rune(0x2801), s.Name, dashes[i%len(dashes)].name)
		if useColor {
			label = palette[i%len(palette)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func compose(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	first := -1
	for i, cells := range layers {
		if cells[y][x] == 0 {
			continue
		}
		if first == -1 {
			first = i
		}
		mask |= cells[y][x]
	}
	return mask, first
}

// resample stretches or averages values to exactly width points.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func valueToRow(v, minVal, maxVal float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	if row < 0 {
		return 0
	}
	if row >= rows {
		return rows - 1
	}
	return row
}

// drawLine walks a Bresenham line between two dot positions.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Braille cells are 2 dots wide and 4 dots tall.
var dotMasks = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func setDot(cells [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cy, cx := y/4, x/2
	if cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= dotMasks[x%2][y%4]
}
