// Package colorscale maps scalar values onto named colour maps with a
// clipped linear normalisation.
package colorscale

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"github.com/frasere/matchreport/internal/model"
)

// ErrUnknownColormap is returned by Lookup for names with no registered map.
var ErrUnknownColormap = errors.New("unknown colormap")

// Bad is the colour returned for NaN values.
var Bad = model.RGBA{}

// stops are sampled from the matplotlib colour maps of the same name.
var stops = map[string][]string{
	"viridis":  {"#440154", "#472c7a", "#3b518b", "#2c718e", "#21908d", "#27ad81", "#5cc863", "#aadc32", "#fde725"},
	"plasma":   {"#0d0887", "#5302a3", "#8b0aa5", "#b83289", "#db5c68", "#f48849", "#febd2a", "#f0f921"},
	"Reds":     {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	"Blues":    {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"Greens":   {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	"Oranges":  {"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704"},
	"coolwarm": {"#3b4cc0", "#7396f5", "#b0cbfc", "#dddddd", "#f6bfa6", "#ea7b60", "#b40426"},
}

// Colormap is an ordered list of colour stops spread evenly over [0,1].
type Colormap struct {
	Name  string
	stops []colorful.Color
}

// Names returns the registered colour map names, sorted.
func Names() []string {
	out := make([]string, 0, len(stops))
	for n := range stops {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the named colour map. A "_r" suffix reverses it.
func Lookup(name string) (*Colormap, error) {
	base, reversed := strings.CutSuffix(name, "_r")
	hexes, ok := stops[base]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
	}
	cm := &Colormap{Name: name, stops: make([]colorful.Color, len(hexes))}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("colormap %s stop %d: %w", base, i, err)
		}
		cm.stops[i] = c
	}
	if reversed {
		for i, j := 0, len(cm.stops)-1; i < j; i, j = i+1, j-1 {
			cm.stops[i], cm.stops[j] = cm.stops[j], cm.stops[i]
		}
	}
	return cm, nil
}

// At returns the colour at position t in [0,1]; t is clamped.
func (cm *Colormap) At(t float64) model.RGBA {
	if math.IsNaN(t) {
		return Bad
	}
	t = math.Max(0, math.Min(1, t))
	n := len(cm.stops) - 1
	pos := t * float64(n)
	i := int(pos)
	if i >= n {
		i = n - 1
	}
	c := cm.stops[i].BlendRgb(cm.stops[i+1], pos-float64(i)).Clamped()
	return model.RGBA{R: c.R, G: c.G, B: c.B, A: 1}
}

// Normalize maps v linearly from [vmin,vmax] to [0,1], clipping values
// outside the range. When vmin == vmax every value maps to 0.
func Normalize(v, vmin, vmax float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	if vmin == vmax {
		return 0
	}
	t := (v - vmin) / (vmax - vmin)
	return math.Max(0, math.Min(1, t))
}

// Scale is a colour map bound to a value range.
type Scale struct {
	Map        *Colormap
	Vmin, Vmax float64
}

// Color returns the colour for v.
func (s Scale) Color(v float64) model.RGBA {
	if math.IsNaN(v) {
		return Bad
	}
	return s.Map.At(Normalize(v, s.Vmin, s.Vmax))
}

// Linear colours values on cm normalised over [vmin,vmax].
func Linear(values []float64, cm *Colormap, vmin, vmax float64) []model.RGBA {
	s := Scale{Map: cm, Vmin: vmin, Vmax: vmax}
	out := make([]model.RGBA, len(values))
	for i, v := range values {
		out[i] = s.Color(v)
	}
	return out
}

// MinMax returns the smallest and largest non-NaN values; both are 0 when
// there are none.
func MinMax(values []float64) (lo, hi float64) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0
	}
	return floats.Min(finite), floats.Max(finite)
}

// Hex formats c as "#rrggbb".
func Hex(c model.RGBA) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// ParseHex parses "#rrggbb" into an opaque colour.
func ParseHex(s string) (model.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return model.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return model.RGBA{R: c.R, G: c.G, B: c.B, A: 1}, nil
}
