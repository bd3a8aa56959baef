package coverage

// CoverageType describes the cell shape of a coverage grid.
type CoverageType int

const (
	Rectangular CoverageType = iota
	Hexagonal
	Custom
)

func (t CoverageType) String() string {
	switch t {
	case Rectangular:
		return "rectangular"
	case Hexagonal:
		return "hexagonal"
	case Custom:
		return "custom"
	}
	return "unknown"
}

// PatternTransform describes how to step from one cell to its neighbour:
// a translation in cell widths/heights, a rotation in radians
// (counter-clockwise, applied around each cell's own centroid), and for
// rows an extra x offset in cell widths applied to every odd row.
type PatternTransform struct {
	Translate [2]float64
	Rotate    float64
	Offset    float64
}

// Pattern describes a custom cell tiling: the normalized shape of one
// cell and the column/row stepping rules. Translation and rotation
// accumulate across the grid walk, which is what produces brick,
// staggered or fanned tilings.
//
// Shape is a flat (x, y) vertex sequence spanning the unit square around
// the origin, scaled by the cell resolution at render time. Patterns are
// immutable and supplied by the caller for Custom coverages; the library
// passes shapes through to the tessellator without sanitizing them.
type Pattern struct {
	Shape  []float64
	Column PatternTransform
	Row    PatternTransform
}
