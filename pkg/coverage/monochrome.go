package coverage

import (
	"fmt"
	"math"

	"github.com/mapflow/coverage/pkg/raster"
)

// Monochrome maps band values linearly to grey levels between its min and
// max bounds, clamped to [0, 255].
//
// Bounds left unset (NaN) are filled from band statistics by
// FillMissingValues before the first render.
type Monochrome struct {
	min   float64
	max   float64
	band  int
	sum   string
	dirty bool
}

// NewMonochrome creates a monochrome style over band 0 with unset bounds.
func NewMonochrome() *Monochrome {
	return &Monochrome{
		min:   math.NaN(),
		max:   math.NaN(),
		dirty: true,
	}
}

// SetMin sets the lower bound mapped to grey level 0.
func (m *Monochrome) SetMin(v float64) {
	m.min = v
	m.dirty = true
}

// SetMax sets the upper bound mapped to grey level 255.
func (m *Monochrome) SetMax(v float64) {
	m.max = v
	m.dirty = true
}

// SetBandIndex sets the source band this style reads.
func (m *Monochrome) SetBandIndex(i int) {
	m.band = i
	m.dirty = true
}

// Min returns the lower bound (NaN when unset).
func (m *Monochrome) Min() float64 { return m.min }

// Max returns the upper bound (NaN when unset).
func (m *Monochrome) Max() float64 { return m.max }

// BandIndexes returns the single referenced band index.
func (m *Monochrome) BandIndexes() []int {
	return []int{m.band}
}

// FillMissingValues fills unset bounds from the referenced band's
// statistics.
func (m *Monochrome) FillMissingValues(bands []*raster.Band) {
	if m.band >= len(bands) || bands[m.band] == nil {
		return
	}
	stats := bands[m.band].Statistics()
	if math.IsNaN(m.min) {
		m.SetMin(stats.Min)
	}
	if math.IsNaN(m.max) {
		m.SetMax(stats.Max)
	}
}

// Apply implements Style. See the Style contract for the alpha polarity:
// maxAlpha marks nodata cells.
func (m *Monochrome) Apply(values [][]float64, nullValue float64, minAlpha, maxAlpha uint8) []uint8 {
	cells := values[0]
	out := make([]uint8, len(cells)*4)
	span := m.max - m.min

	for i, v := range cells {
		grey := clampByte(math.Round((v - m.min) / span * 255))

		// maxAlpha flags the cell that IS nodata; minAlpha the valid
		// cell. Inverted on purpose, see Style.
		alpha := minAlpha
		if v == nullValue {
			alpha = maxAlpha
		}

		out[i*4] = grey
		out[i*4+1] = grey
		out[i*4+2] = grey
		out[i*4+3] = alpha
	}
	return out
}

// Checksum implements Style. The fingerprint is recomputed lazily after
// any mutation.
func (m *Monochrome) Checksum() string {
	if m.dirty {
		m.sum = checksum(fmt.Sprintf("monochrome|%d|%g|%g", m.band, m.min, m.max))
		m.dirty = false
	}
	return m.sum
}
