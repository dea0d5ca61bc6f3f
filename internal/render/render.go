// Package render draws pass networks as SVG on a StatsBomb pitch.
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/frasere/matchreport/internal/colorscale"
	"github.com/frasere/matchreport/internal/model"
)

// Options controls the drawing.
type Options struct {
	Scale     int     // pixels per pitch unit
	Margin    int     // pixels around the pitch
	MinPasses int     // edges with fewer passes are skipped
	MaxWidth  float64 // stroke width of the busiest edge
	MaxRadius float64 // radius of the most-touching node
	Title     string
}

// DefaultOptions draws a 960x640 pitch.
func DefaultOptions() Options {
	return Options{
		Scale:     8,
		Margin:    24,
		MinPasses: 1,
		MaxWidth:  12,
		MaxRadius: 22,
	}
}

type canvas struct {
	*svg.SVG
	scale, margin int
}

func (c canvas) px(v float64) int {
	return c.margin + int(math.Round(v*float64(c.scale)))
}

func (c canvas) size(v float64) int {
	return int(math.Round(v * float64(c.scale)))
}

func (c canvas) line(x1, y1, x2, y2 float64, style string) {
	c.Line(c.px(x1), c.px(y1), c.px(x2), c.px(y2), style)
}

// Pitch draws the pitch markings.
func (c canvas) pitch() {
	const line = "stroke:black;stroke-opacity:0.7;stroke-width:2;fill:none"
	c.Rect(c.px(0), c.px(0), c.size(model.PitchLength), c.size(model.PitchWidth), "fill:white;"+line)
	c.line(60, 0, 60, 80, line)

	// Penalty and six-yard boxes.
	c.Rect(c.px(0), c.px(18), c.size(18), c.size(44), line)
	c.Rect(c.px(102), c.px(18), c.size(18), c.size(44), line)
	c.Rect(c.px(0), c.px(30), c.size(6), c.size(20), line)
	c.Rect(c.px(114), c.px(30), c.size(6), c.size(20), line)

	c.Circle(c.px(60), c.px(40), c.size(12), line)
	for _, x := range []float64{12, 60, 108} {
		c.Circle(c.px(x), c.px(40), c.size(0.5), "fill:black;fill-opacity:0.7")
	}
}

// Network writes an SVG of net to w. Edge width scales with pass count and
// node radius with touch count.
func Network(w io.Writer, net model.Network, opts Options) error {
	if opts.Scale <= 0 {
		return fmt.Errorf("render: scale must be positive, got %d", opts.Scale)
	}
	c := canvas{SVG: svg.New(w), scale: opts.Scale, margin: opts.Margin}
	width := c.size(model.PitchLength) + 2*opts.Margin
	height := c.size(model.PitchWidth) + 2*opts.Margin

	c.Start(width, height)
	if opts.Title != "" {
		c.Title(opts.Title)
	}
	c.pitch()

	maxPasses := 0
	for _, e := range net.Edges {
		maxPasses = max(maxPasses, e.PassCount)
	}
	c.Gstyle("stroke-linecap:round")
	for _, e := range net.Edges {
		if e.PassCount < opts.MinPasses || e.PassCount == 0 {
			continue
		}
		sw := opts.MaxWidth * float64(e.PassCount) / float64(maxPasses)
		style := fmt.Sprintf("stroke:%s;stroke-opacity:0.8;stroke-width:%.1f",
			colorscale.Hex(e.XGCColor), math.Max(sw, 1))
		c.line(e.Loc1.X, e.Loc1.Y, e.Loc2.X, e.Loc2.Y, style)
	}
	c.Gend()

	maxTouches := 0
	for _, n := range net.Nodes {
		maxTouches = max(maxTouches, n.TouchCount)
	}
	c.Gstyle("font-family:sans-serif;font-size:12px;text-anchor:middle")
	for _, n := range net.Nodes {
		r := opts.MaxRadius / 2
		if maxTouches > 0 {
			r = opts.MaxRadius * math.Sqrt(float64(n.TouchCount)/float64(maxTouches))
		}
		r = math.Max(r, 4)
		x, y := c.px(n.Location.X), c.px(n.Location.Y)
		c.Circle(x, y, int(math.Round(r)),
			fmt.Sprintf("fill:%s;stroke:black;stroke-width:1", colorscale.Hex(n.XGColor)))
		c.Text(x, y-int(math.Round(r))-4, n.Player, "fill:black")
	}
	c.Gend()

	c.End()
	return nil
}
