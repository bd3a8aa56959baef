package coverage

// Extent is a bounding box as (minX, minY, maxX, maxY) in map units.
type Extent [4]float64

// Width returns maxX - minX.
func (e Extent) Width() float64 {
	return e[2] - e[0]
}

// Height returns maxY - minY.
func (e Extent) Height() float64 {
	return e[3] - e[1]
}

// Intersects reports whether the two extents share any area, edges
// included.
func (e Extent) Intersects(o Extent) bool {
	return e[0] <= o[2] && e[2] >= o[0] && e[1] <= o[3] && e[3] >= o[1]
}

// Contains reports whether o lies entirely within e.
func (e Extent) Contains(o Extent) bool {
	return e[0] <= o[0] && e[1] <= o[1] && e[2] >= o[2] && e[3] >= o[3]
}

// ContainsXY reports whether the point (x, y) lies within e.
func (e Extent) ContainsXY(x, y float64) bool {
	return e[0] <= x && x <= e[2] && e[1] <= y && y <= e[3]
}

// Buffer returns the extent grown by d on every side.
func (e Extent) Buffer(d float64) Extent {
	return Extent{e[0] - d, e[1] - d, e[2] + d, e[3] + d}
}

// Union returns the smallest extent covering both e and o.
func (e Extent) Union(o Extent) Extent {
	return Extent{
		min(e[0], o[0]),
		min(e[1], o[1]),
		max(e[2], o[2]),
		max(e[3], o[3]),
	}
}

// Empty reports whether the extent has no area.
func (e Extent) Empty() bool {
	return e[2] <= e[0] || e[3] <= e[1]
}
