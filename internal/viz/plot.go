package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/polyroot/internal/analysis"
	"github.com/san-kum/polyroot/internal/poly"
)

type cell struct{ col, row int }

// Plot maps a world window [XMin, XMax] x [YMin, YMax] onto braille canvases:
// one for the polynomial, one for an overlay curve and one for the axes.
// Single-character marks sit on top of all three.
type Plot struct {
	XMin, XMax, YMin, YMax float64

	curve, overlay, axes *Canvas
	marks                map[cell]rune
}

func NewPlot(width, height int, xmin, xmax, ymin, ymax float64) *Plot {
	if xmax <= xmin {
		xmin, xmax = xmin-1, xmin+1
	}
	if ymax <= ymin {
		ymin, ymax = ymin-1, ymin+1
	}
	return &Plot{
		XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax,
		curve:   NewCanvas(width, height),
		overlay: NewCanvas(width, height),
		axes:    NewCanvas(width, height),
		marks:   make(map[cell]rune),
	}
}

// FitPlot sizes the y window to p sampled over [xmin, xmax] with a small
// margin, and draws the axes.
func FitPlot(p poly.Poly, width, height int, xmin, xmax float64) *Plot {
	_, ys := analysis.Sample(p, xmin, xmax, width*2)
	ymin, ymax, ok := analysis.Bounds(ys)
	if !ok {
		ymin, ymax = -1, 1
	}
	pad := (ymax - ymin) * 0.05
	pl := NewPlot(width, height, xmin, xmax, ymin-pad, ymax+pad)
	pl.DrawAxes()
	return pl
}

func (pl *Plot) subWidth() int  { return pl.curve.Width * 2 }
func (pl *Plot) subHeight() int { return pl.curve.Height * 4 }

// toPixel converts world coordinates to sub-pixels. y grows downwards.
func (pl *Plot) toPixel(x, y float64) (int, int) {
	w, h := float64(pl.subWidth()-1), float64(pl.subHeight()-1)
	px := (x - pl.XMin) / (pl.XMax - pl.XMin) * w
	py := (pl.YMax - y) / (pl.YMax - pl.YMin) * h
	// keep Bresenham bounded for points far outside the window
	px = math.Max(-w, math.Min(2*w, px))
	py = math.Max(-h, math.Min(2*h, py))
	return int(math.Round(px)), int(math.Round(py))
}

func (pl *Plot) DrawAxes() {
	if pl.YMin <= 0 && pl.YMax >= 0 {
		_, y := pl.toPixel(pl.XMin, 0)
		pl.axes.DrawLine(0, y, pl.subWidth()-1, y)
	}
	if pl.XMin <= 0 && pl.XMax >= 0 {
		x, _ := pl.toPixel(0, pl.YMin)
		pl.axes.DrawLine(x, 0, x, pl.subHeight()-1)
	}
}

func (pl *Plot) DrawPoly(p poly.Poly) {
	pl.drawFunc(pl.curve, p)
}

// DrawOverlay draws p on the secondary canvas, typically the derivative.
func (pl *Plot) DrawOverlay(p poly.Poly) {
	pl.drawFunc(pl.overlay, p)
}

func (pl *Plot) drawFunc(c *Canvas, p poly.Poly) {
	n := pl.subWidth()
	xs, ys := analysis.Sample(p, pl.XMin, pl.XMax, n)
	havePrev := false
	var px, py int
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			havePrev = false
			continue
		}
		x, y := pl.toPixel(xs[i], ys[i])
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// DrawSegment draws a straight world-space line on the overlay canvas.
func (pl *Plot) DrawSegment(x0, y0, x1, y1 float64) {
	a, b := pl.toPixel(x0, y0)
	c, d := pl.toPixel(x1, y1)
	pl.overlay.DrawLine(a, b, c, d)
}

// Mark places r in the cell containing (x, y). Points outside the window
// are dropped.
func (pl *Plot) Mark(x, y float64, r rune) {
	px, py := pl.toPixel(x, y)
	if px < 0 || py < 0 || px >= pl.subWidth() || py >= pl.subHeight() {
		return
	}
	pl.marks[cell{col: px / 2, row: py / 4}] = r
}

type layer int

const (
	layerNone layer = iota
	layerCurve
	layerOverlay
	layerAxes
	layerMark
)

// cellAt returns the character shown at (col, row) and the layer it comes
// from. Braille dots of all canvases are merged; the colour follows the top
// non-empty layer.
func (pl *Plot) cellAt(col, row int) (rune, layer) {
	if r, ok := pl.marks[cell{col, row}]; ok {
		return r, layerMark
	}
	merged := pl.curve.Grid[row][col] | pl.overlay.Grid[row][col] | pl.axes.Grid[row][col]
	switch {
	case !pl.curve.Empty(col, row):
		return merged, layerCurve
	case !pl.overlay.Empty(col, row):
		return merged, layerOverlay
	case !pl.axes.Empty(col, row):
		return merged, layerAxes
	}
	return ' ', layerNone
}

// Render draws the plot with the colours of th.
func (pl *Plot) Render(th Theme) string {
	styles := map[layer]lipgloss.Style{
		layerCurve:   lipgloss.NewStyle().Foreground(th.Curve),
		layerOverlay: lipgloss.NewStyle().Foreground(th.Derivative),
		layerAxes:    lipgloss.NewStyle().Foreground(th.Axis),
		layerMark:    lipgloss.NewStyle().Foreground(th.Iterate).Bold(true),
	}
	root := lipgloss.NewStyle().Foreground(th.Root).Bold(true)

	var b strings.Builder
	for row := 0; row < pl.curve.Height; row++ {
		for col := 0; col < pl.curve.Width; col++ {
			r, l := pl.cellAt(col, row)
			switch {
			case l == layerNone:
				b.WriteRune(r)
			case l == layerMark && r == RootMark:
				b.WriteString(root.Render(string(r)))
			default:
				b.WriteString(styles[l].Render(string(r)))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the plot without colour.
func (pl *Plot) String() string {
	var b strings.Builder
	for row := 0; row < pl.curve.Height; row++ {
		for col := 0; col < pl.curve.Width; col++ {
			r, _ := pl.cellAt(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

const (
	IterateMark = '●'
	RootMark    = '◆'
)
