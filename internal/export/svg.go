package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/polyroot/internal/analysis"
	"github.com/san-kum/polyroot/internal/newton"
	"github.com/san-kum/polyroot/internal/poly"
)

// SVGOptions controls the size and window of PlotSVG.
type SVGOptions struct {
	Width, Height int
	XMin, XMax    float64
	Samples       int
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 800, Height: 500, XMin: -10, XMax: 10, Samples: 400}
}

// PlotSVG renders p over [XMin, XMax] together with the Newton iterates in
// steps: each iterate is a dot on the curve with its tangent down to the
// x axis.
func PlotSVG(p poly.Poly, steps []newton.Step, opts SVGOptions) string {
	if opts.Samples < 2 {
		opts.Samples = 2
	}
	xs, ys := analysis.Sample(p, opts.XMin, opts.XMax, opts.Samples)
	ymin, ymax, ok := analysis.Bounds(ys)
	if !ok {
		ymin, ymax = -1, 1
	}
	if ymax <= ymin {
		ymin, ymax = ymin-1, ymax+1
	}
	pad := (ymax - ymin) * 0.05
	ymin, ymax = ymin-pad, ymax+pad

	w, h := float64(opts.Width), float64(opts.Height)
	sx := func(x float64) float64 { return (x - opts.XMin) / (opts.XMax - opts.XMin) * w }
	sy := func(y float64) float64 { return (ymax - y) / (ymax - ymin) * h }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, opts.Width, opts.Height, opts.Width, opts.Height))

	if ymin <= 0 && ymax >= 0 {
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#444466" stroke-width="1"/>
`, sy(0), w, sy(0)))
	}
	if opts.XMin <= 0 && opts.XMax >= 0 {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="0" x2="%.2f" y2="%.2f" stroke="#444466" stroke-width="1"/>
`, sx(0), sx(0), h))
	}

	sb.WriteString(`<polyline fill="none" stroke="#00ffff" stroke-width="2" points="`)
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f ", sx(xs[i]), sy(ys[i])))
	}
	sb.WriteString("\"/>\n")

	if len(steps) > 0 {
		sb.WriteString(`<g stroke="#ff00ff" stroke-width="1" stroke-dasharray="4 3">` + "\n")
		for _, st := range steps {
			sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, sx(st.Guess), sy(st.Value), sx(st.Next), sy(0)))
		}
		sb.WriteString("</g>\n")

		sb.WriteString(`<g fill="#ffff00">` + "\n")
		for _, st := range steps {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="4"/>
`, sx(st.Guess), sy(st.Value)))
		}
		sb.WriteString("</g>\n")

		last := steps[len(steps)-1]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="6" fill="#00ff00"/>
`, sx(last.Next), sy(0)))
	}

	sb.WriteString(fmt.Sprintf(`<text x="10" y="20" fill="#ffffff" font-family="monospace" font-size="14">%s</text>
`, escapeXML(p.String())))
	sb.WriteString("</svg>\n")
	return sb.String()
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
