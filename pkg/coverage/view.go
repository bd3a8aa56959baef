package coverage

// Projection identifies a coordinate reference system as far as this
// library needs to: an identity code, the valid coordinate extent, and
// whether the x axis wraps around the world.
//
// Actual coordinate transformation is a collaborator responsibility,
// supplied per frame as a TransformFunc.
type Projection struct {
	Code     string
	Extent   Extent
	CanWrapX bool
}

// Equivalent reports whether two projections describe the same coordinate
// system. A nil projection is equivalent only to nil.
func (p *Projection) Equivalent(o *Projection) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Code == o.Code
}

// TransformFunc reprojects a single coordinate pair.
type TransformFunc func(x, y float64) (float64, float64)

// FrameState carries the per-frame view context consumed by the renderers:
// the visible extent, resolution, device pixel ratio, rotation and the
// animation/interaction hints, plus the view projection and the transform
// from the coverage source's projection into it (nil when they are
// equivalent).
type FrameState struct {
	Extent      Extent
	Resolution  float64
	PixelRatio  float64
	Rotation    float64
	Animating   bool
	Interacting bool
	Projection  *Projection
	Transform   TransformFunc
}
