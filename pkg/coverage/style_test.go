package coverage

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mapflow/coverage/pkg/raster"
)

func TestMonochromeChecksumStability(t *testing.T) {
	a := NewMonochrome()
	a.SetMin(0)
	a.SetMax(100)
	a.SetBandIndex(1)

	b := NewMonochrome()
	b.SetMin(0)
	b.SetMax(100)
	b.SetBandIndex(1)

	if a.Checksum() != b.Checksum() {
		t.Errorf("Expected equal checksums for identical parameters, got %s and %s",
			a.Checksum(), b.Checksum())
	}
}

func TestMonochromeChecksumUniqueness(t *testing.T) {
	base := func() *Monochrome {
		s := NewMonochrome()
		s.SetMin(0)
		s.SetMax(100)
		s.SetBandIndex(0)
		return s
	}
	reference := base().Checksum()

	mutations := map[string]func(*Monochrome){
		"min":  func(s *Monochrome) { s.SetMin(1) },
		"max":  func(s *Monochrome) { s.SetMax(99) },
		"band": func(s *Monochrome) { s.SetBandIndex(2) },
	}
	for name, mutate := range mutations {
		s := base()
		mutate(s)
		if s.Checksum() == reference {
			t.Errorf("Expected %s change to alter checksum, got %s unchanged", name, reference)
		}
	}
}

func TestChecksumDistinguishesStyleKind(t *testing.T) {
	m := NewMonochrome()
	m.SetMin(0)
	m.SetMax(100)

	p := NewPseudocolor()
	p.SetMin(0)
	p.SetMax(100)

	if m.Checksum() == p.Checksum() {
		t.Error("Expected different checksums for different style kinds")
	}
}

func TestMonochromeIdentity(t *testing.T) {
	values := make([]float64, 256)
	for i := range values {
		values[i] = float64(i)
	}

	s := NewMonochrome()
	s.SetMin(0)
	s.SetMax(255)

	out := s.Apply([][]float64{values}, math.NaN(), 255, 0)
	for i, v := range values {
		if out[i*4] != uint8(v) {
			t.Errorf("Expected grey %d at cell %d, got %d", uint8(v), i, out[i*4])
		}
		if out[i*4] != out[i*4+1] || out[i*4+1] != out[i*4+2] {
			t.Errorf("Expected equal RGB at cell %d, got (%d,%d,%d)",
				i, out[i*4], out[i*4+1], out[i*4+2])
		}
	}
}

func TestMonochromeAlphaPolarity(t *testing.T) {
	s := NewMonochrome()
	s.SetMin(0)
	s.SetMax(10)

	// The argument named maxAlpha is assigned to the cell that IS
	// nodata; minAlpha to valid cells.
	out := s.Apply([][]float64{{5, -9999}}, -9999, 7, 3)
	if out[3] != 7 {
		t.Errorf("Expected valid cell alpha 7 (minAlpha), got %d", out[3])
	}
	if out[7] != 3 {
		t.Errorf("Expected nodata cell alpha 3 (maxAlpha), got %d", out[7])
	}
}

func TestMonochromeClamping(t *testing.T) {
	s := NewMonochrome()
	s.SetMin(10)
	s.SetMax(20)

	out := s.Apply([][]float64{{-100, 100}}, math.NaN(), 255, 0)
	if out[0] != 0 {
		t.Errorf("Expected below-min value to clamp to 0, got %d", out[0])
	}
	if out[4] != 255 {
		t.Errorf("Expected above-max value to clamp to 255, got %d", out[4])
	}
}

func TestMonochromeFillMissingValues(t *testing.T) {
	m := mustBand(t, []float64{2, 4, 6, 8}, 2, -9999)

	s := NewMonochrome()
	s.FillMissingValues([]*raster.Band{m})
	if s.Min() != 2 || s.Max() != 8 {
		t.Errorf("Expected bounds (2, 8) from statistics, got (%g, %g)", s.Min(), s.Max())
	}

	// Explicit bounds survive filling.
	s2 := NewMonochrome()
	s2.SetMin(0)
	s2.FillMissingValues([]*raster.Band{m})
	if s2.Min() != 0 {
		t.Errorf("Expected explicit min 0 to survive, got %g", s2.Min())
	}
	if s2.Max() != 8 {
		t.Errorf("Expected max filled to 8, got %g", s2.Max())
	}
}

func TestPseudocolorBreakpointOrderIndependence(t *testing.T) {
	build := func(values ...float64) *Pseudocolor {
		s := NewPseudocolor()
		s.SetMin(0)
		s.SetMax(100)
		s.SetStartColor(Color{0, 0, 255})
		s.SetEndColor(Color{255, 0, 0})
		for _, v := range values {
			s.AddBreakpoint(v, Color{uint8(v), 255, 0})
		}
		return s
	}

	cells := []float64{0, 10, 25, 30, 55, 70, 99, 100}
	sorted := build(25, 50, 75).Apply([][]float64{cells}, math.NaN(), 255, 0)
	unsorted := build(75, 25, 50).Apply([][]float64{cells}, math.NaN(), 255, 0)

	if diff := cmp.Diff(sorted, unsorted); diff != "" {
		t.Errorf("Expected identical output for unsorted breakpoints (-sorted +unsorted):\n%s", diff)
	}
	if build(25, 50, 75).Checksum() != build(75, 25, 50).Checksum() {
		t.Error("Expected breakpoint insertion order not to change the checksum")
	}
}

func TestPseudocolorChecksumBreakpointSensitivity(t *testing.T) {
	build := func(v float64) *Pseudocolor {
		s := NewPseudocolor()
		s.SetMin(0)
		s.SetMax(100)
		s.AddBreakpoint(v, Color{10, 20, 30})
		return s
	}
	if build(25).Checksum() == build(26).Checksum() {
		t.Error("Expected a single breakpoint change to alter the checksum")
	}
}

func TestPseudocolorInterpolate(t *testing.T) {
	s := NewPseudocolor()
	s.SetMin(0)
	s.SetMax(100)
	s.SetStartColor(Color{0, 0, 0})
	s.SetEndColor(Color{200, 100, 0})

	out := s.Apply([][]float64{{0, 50, 100}}, math.NaN(), 255, 0)
	if out[0] != 0 || out[1] != 0 || out[2] != 0 {
		t.Errorf("Expected start color at min, got (%d,%d,%d)", out[0], out[1], out[2])
	}
	if out[4] != 100 || out[5] != 50 {
		t.Errorf("Expected midpoint blend (100,50,0), got (%d,%d,%d)", out[4], out[5], out[6])
	}
	if out[8] != 200 || out[9] != 100 {
		t.Errorf("Expected end color at max, got (%d,%d,%d)", out[8], out[9], out[10])
	}
}

func TestPseudocolorCategorized(t *testing.T) {
	s := NewPseudocolor()
	s.SetMin(0)
	s.SetMax(100)
	s.SetMode(Categorized)
	s.SetStartColor(Color{10, 0, 0})
	s.SetEndColor(Color{0, 0, 99})
	s.AddBreakpoint(50, Color{0, 20, 0})

	// Intervals are lower-inclusive, upper-exclusive; the final interval
	// includes its upper bound.
	out := s.Apply([][]float64{{0, 49.9, 50, 99.9, 100}}, math.NaN(), 255, 0)
	wantRed := []uint8{10, 10, 0, 0, 0}
	wantGreen := []uint8{0, 0, 20, 20, 20}
	for i := range wantRed {
		if out[i*4] != wantRed[i] || out[i*4+1] != wantGreen[i] {
			t.Errorf("Cell %d: expected color (%d,%d,0), got (%d,%d,%d)",
				i, wantRed[i], wantGreen[i], out[i*4], out[i*4+1], out[i*4+2])
		}
	}
}

// Out-of-range values clamp to pure black and pure white rather than the
// ramp's start and end colors. This looks inconsistent but is inherited,
// load-bearing behavior.
func TestPseudocolorOutOfRange(t *testing.T) {
	s := NewPseudocolor()
	s.SetMin(10)
	s.SetMax(20)
	s.SetStartColor(Color{50, 60, 70})
	s.SetEndColor(Color{80, 90, 100})

	out := s.Apply([][]float64{{5, 25}}, math.NaN(), 255, 0)
	if out[0] != 0 || out[1] != 0 || out[2] != 0 {
		t.Errorf("Expected pure black below min, got (%d,%d,%d)", out[0], out[1], out[2])
	}
	if out[4] != 255 || out[5] != 255 || out[6] != 255 {
		t.Errorf("Expected pure white above max, got (%d,%d,%d)", out[4], out[5], out[6])
	}
}

func TestRGBComposite(t *testing.T) {
	s := NewRGB()
	s.SetChannel(RedChannel, 0)
	s.SetChannel(BlueChannel, 1)
	s.SetChannelMin(RedChannel, 0)
	s.SetChannelMax(RedChannel, 100)
	s.SetChannelMin(BlueChannel, 0)
	s.SetChannelMax(BlueChannel, 200)

	if diff := cmp.Diff([]int{0, -1, 1}, s.BandIndexes()); diff != "" {
		t.Errorf("Band indexes mismatch (-want +got):\n%s", diff)
	}

	values := [][]float64{{50}, nil, {100}}
	out := s.Apply(values, math.NaN(), 255, 0)
	if out[0] != 128 {
		t.Errorf("Expected red 128, got %d", out[0])
	}
	if out[1] != 0 {
		t.Errorf("Expected unbound green channel 0, got %d", out[1])
	}
	if out[2] != 128 {
		t.Errorf("Expected blue 128, got %d", out[2])
	}
	if out[3] != 255 {
		t.Errorf("Expected valid cell alpha 255, got %d", out[3])
	}
}

func TestRGBNodata(t *testing.T) {
	s := NewRGB()
	s.SetChannel(RedChannel, 0)
	s.SetChannel(GreenChannel, 1)
	s.SetChannelMin(RedChannel, 0)
	s.SetChannelMax(RedChannel, 100)
	s.SetChannelMin(GreenChannel, 0)
	s.SetChannelMax(GreenChannel, 100)

	// Nodata only when every bound channel reads the null value.
	out := s.Apply([][]float64{{-9999, -9999}, {-9999, 50}}, -9999, 255, 0)
	if out[3] != 0 {
		t.Errorf("Expected all-null cell to carry maxAlpha 0, got %d", out[3])
	}
	if out[7] != 255 {
		t.Errorf("Expected partially valid cell to carry minAlpha 255, got %d", out[7])
	}
}

func TestRGBChecksumSensitivity(t *testing.T) {
	build := func() *RGB {
		s := NewRGB()
		s.SetChannel(RedChannel, 0)
		s.SetChannelMin(RedChannel, 0)
		s.SetChannelMax(RedChannel, 100)
		return s
	}
	a := build()
	b := build()
	if a.Checksum() != b.Checksum() {
		t.Error("Expected equal checksums for identical composites")
	}
	b.SetChannelMax(RedChannel, 99)
	if a.Checksum() == b.Checksum() {
		t.Error("Expected channel bound change to alter the checksum")
	}
}
