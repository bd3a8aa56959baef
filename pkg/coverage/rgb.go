package coverage

import (
	"fmt"
	"math"
	"strings"

	"github.com/mapflow/coverage/pkg/raster"
)

// ChannelIndex selects one of the three composite channels.
type ChannelIndex int

const (
	RedChannel ChannelIndex = iota
	GreenChannel
	BlueChannel
)

// rgbChannel binds one output channel to a band with its own bounds.
type rgbChannel struct {
	band float64 // NaN when the channel is unbound
	min  float64
	max  float64
}

// RGB composites three bands into the red, green and blue output channels,
// each stretched independently between its own min and max like a
// monochrome channel. Unbound channels contribute 0.
//
// The referenced bands must be spatially aligned (common extent,
// resolution and stride) before Apply; Source.GetStyledBand does that
// alignment.
type RGB struct {
	channels [3]rgbChannel
	sum      string
	dirty    bool
}

// NewRGB creates a composite style with all channels unbound.
func NewRGB() *RGB {
	s := &RGB{dirty: true}
	for i := range s.channels {
		s.channels[i] = rgbChannel{
			band: math.NaN(),
			min:  math.NaN(),
			max:  math.NaN(),
		}
	}
	return s
}

// SetChannel binds a channel to a source band index.
func (s *RGB) SetChannel(c ChannelIndex, band int) {
	s.channels[c].band = float64(band)
	s.dirty = true
}

// SetChannelMin sets a channel's lower stretch bound.
func (s *RGB) SetChannelMin(c ChannelIndex, v float64) {
	s.channels[c].min = v
	s.dirty = true
}

// SetChannelMax sets a channel's upper stretch bound.
func (s *RGB) SetChannelMax(c ChannelIndex, v float64) {
	s.channels[c].max = v
	s.dirty = true
}

// BandIndexes returns the bound band indexes in red, green, blue order.
// Unbound channels yield -1 placeholders so positions stay stable.
func (s *RGB) BandIndexes() []int {
	out := make([]int, 3)
	for i, ch := range s.channels {
		if math.IsNaN(ch.band) {
			out[i] = -1
		} else {
			out[i] = int(ch.band)
		}
	}
	return out
}

// FillMissingValues fills unset channel bounds from their bands'
// statistics.
func (s *RGB) FillMissingValues(bands []*raster.Band) {
	for i := range s.channels {
		ch := &s.channels[i]
		if math.IsNaN(ch.band) {
			continue
		}
		idx := int(ch.band)
		if idx >= len(bands) || bands[idx] == nil {
			continue
		}
		stats := bands[idx].Statistics()
		if math.IsNaN(ch.min) {
			ch.min = stats.Min
			s.dirty = true
		}
		if math.IsNaN(ch.max) {
			ch.max = stats.Max
			s.dirty = true
		}
	}
}

// Apply implements Style over pre-aligned band values, positionally
// matching BandIndexes (values for unbound channels may be nil). See the
// Style contract for the alpha polarity: maxAlpha marks nodata cells.
//
// A cell is nodata when every bound channel reads the null value there.
func (s *RGB) Apply(values [][]float64, nullValue float64, minAlpha, maxAlpha uint8) []uint8 {
	cells := 0
	for _, v := range values {
		if len(v) > cells {
			cells = len(v)
		}
	}
	out := make([]uint8, cells*4)

	for i := 0; i < cells; i++ {
		bound, null := 0, 0
		for c := range s.channels {
			ch := s.channels[c]
			if math.IsNaN(ch.band) || c >= len(values) || values[c] == nil || i >= len(values[c]) {
				continue
			}
			bound++
			v := values[c][i]
			if v == nullValue {
				null++
				continue
			}
			out[i*4+c] = clampByte(math.Round((v - ch.min) / (ch.max - ch.min) * 255))
		}

		alpha := minAlpha
		if bound > 0 && null == bound {
			alpha = maxAlpha
		}
		out[i*4+3] = alpha
	}
	return out
}

// Checksum implements Style.
func (s *RGB) Checksum() string {
	if s.dirty {
		var sb strings.Builder
		sb.WriteString("rgb")
		for _, ch := range s.channels {
			fmt.Fprintf(&sb, "|%g:%g:%g", ch.band, ch.min, ch.max)
		}
		s.sum = checksum(sb.String())
		s.dirty = false
	}
	return s.sum
}
