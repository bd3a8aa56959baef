package coverage

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mapflow/coverage/pkg/raster"
)

// PseudocolorMode selects how values are mapped within a color interval.
type PseudocolorMode int

const (
	// Interpolate blends linearly between the bracketing interval colors.
	Interpolate PseudocolorMode = iota
	// Categorized uses the flat color of the interval's lower bound.
	Categorized
)

// Breakpoint is a color anchor strictly between a pseudocolor style's min
// and max.
type Breakpoint struct {
	Value float64
	Color Color
}

// Pseudocolor maps band values onto a color ramp running from StartColor
// at min through any breakpoints to EndColor at max.
//
// Breakpoints may be added in any order; they are always processed in
// ascending value order. Values below min map to opaque black and values
// above max to opaque white — NOT to the start and end colors. That
// out-of-range rule is inherited behavior and intentionally preserved;
// see TestPseudocolorOutOfRange before changing it.
type Pseudocolor struct {
	min         float64
	max         float64
	band        int
	startColor  Color
	endColor    Color
	breakpoints []Breakpoint
	mode        PseudocolorMode
	sum         string
	dirty       bool
}

// NewPseudocolor creates an interpolated pseudocolor style over band 0
// with unset bounds and a black-to-white ramp.
func NewPseudocolor() *Pseudocolor {
	return &Pseudocolor{
		min:      math.NaN(),
		max:      math.NaN(),
		endColor: Color{255, 255, 255},
		dirty:    true,
	}
}

// SetMin sets the ramp's lower bound.
func (p *Pseudocolor) SetMin(v float64) {
	p.min = v
	p.dirty = true
}

// SetMax sets the ramp's upper bound.
func (p *Pseudocolor) SetMax(v float64) {
	p.max = v
	p.dirty = true
}

// SetBandIndex sets the source band this style reads.
func (p *Pseudocolor) SetBandIndex(i int) {
	p.band = i
	p.dirty = true
}

// SetStartColor sets the color at min.
func (p *Pseudocolor) SetStartColor(c Color) {
	p.startColor = c
	p.dirty = true
}

// SetEndColor sets the color at max.
func (p *Pseudocolor) SetEndColor(c Color) {
	p.endColor = c
	p.dirty = true
}

// SetMode selects interpolated or categorized mapping.
func (p *Pseudocolor) SetMode(mode PseudocolorMode) {
	p.mode = mode
	p.dirty = true
}

// AddBreakpoint adds a color anchor. Anchors at or outside the min/max
// bounds are dropped at apply time.
func (p *Pseudocolor) AddBreakpoint(value float64, c Color) {
	p.breakpoints = append(p.breakpoints, Breakpoint{Value: value, Color: c})
	p.dirty = true
}

// BandIndexes returns the single referenced band index.
func (p *Pseudocolor) BandIndexes() []int {
	return []int{p.band}
}

// FillMissingValues fills unset bounds from the referenced band's
// statistics.
func (p *Pseudocolor) FillMissingValues(bands []*raster.Band) {
	if p.band >= len(bands) || bands[p.band] == nil {
		return
	}
	stats := bands[p.band].Statistics()
	if math.IsNaN(p.min) {
		p.SetMin(stats.Min)
	}
	if math.IsNaN(p.max) {
		p.SetMax(stats.Max)
	}
}

// intervals returns the ramp anchors in ascending value order: min with
// the start color, the in-range breakpoints, max with the end color.
func (p *Pseudocolor) intervals() []Breakpoint {
	anchors := make([]Breakpoint, 0, len(p.breakpoints)+2)
	anchors = append(anchors, Breakpoint{Value: p.min, Color: p.startColor})
	for _, bp := range p.breakpoints {
		if bp.Value > p.min && bp.Value < p.max {
			anchors = append(anchors, bp)
		}
	}
	anchors = append(anchors, Breakpoint{Value: p.max, Color: p.endColor})
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].Value < anchors[j].Value
	})
	return anchors
}

// Apply implements Style. See the Style contract for the alpha polarity:
// maxAlpha marks nodata cells.
func (p *Pseudocolor) Apply(values [][]float64, nullValue float64, minAlpha, maxAlpha uint8) []uint8 {
	cells := values[0]
	anchors := p.intervals()
	out := make([]uint8, len(cells)*4)

	for i, v := range cells {
		out[i*4], out[i*4+1], out[i*4+2] = p.colorFor(v, anchors)
		alpha := minAlpha
		if v == nullValue {
			alpha = maxAlpha
		}
		out[i*4+3] = alpha
	}
	return out
}

func (p *Pseudocolor) colorFor(v float64, anchors []Breakpoint) (uint8, uint8, uint8) {
	// Out-of-range values clamp to pure black and pure white, not to the
	// ramp's start and end colors.
	if v < p.min {
		return 0, 0, 0
	}
	if v > p.max {
		return 255, 255, 255
	}

	// Intervals are lower-inclusive, upper-exclusive; the final interval
	// includes its upper bound.
	last := len(anchors) - 1
	for j := 0; j < last; j++ {
		lo, hi := anchors[j], anchors[j+1]
		if v < lo.Value {
			continue
		}
		// Upper bound is exclusive except for the final interval.
		if v >= hi.Value && j+1 != last {
			continue
		}
		if p.mode == Categorized {
			return lo.Color[0], lo.Color[1], lo.Color[2]
		}
		t := 0.0
		if hi.Value != lo.Value {
			t = (v - lo.Value) / (hi.Value - lo.Value)
		}
		return clampByte(float64(lo.Color[0]) + t*(float64(hi.Color[0])-float64(lo.Color[0]))),
			clampByte(float64(lo.Color[1]) + t*(float64(hi.Color[1])-float64(lo.Color[1]))),
			clampByte(float64(lo.Color[2]) + t*(float64(hi.Color[2])-float64(lo.Color[2])))
	}

	c := anchors[last].Color
	return c[0], c[1], c[2]
}

// Checksum implements Style. The fingerprint covers the bounds, colors,
// mode and the breakpoints in ascending order, so insertion order does not
// change it.
func (p *Pseudocolor) Checksum() string {
	if p.dirty {
		sorted := append([]Breakpoint(nil), p.breakpoints...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Value < sorted[j].Value
		})
		var sb strings.Builder
		fmt.Fprintf(&sb, "pseudocolor|%d|%g|%g|%v|%v|%d", p.band, p.min, p.max,
			p.startColor, p.endColor, p.mode)
		for _, bp := range sorted {
			fmt.Fprintf(&sb, "|%g:%v", bp.Value, bp.Color)
		}
		p.sum = checksum(sb.String())
		p.dirty = false
	}
	return p.sum
}
