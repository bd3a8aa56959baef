package coverage

import (
	"github.com/mapflow/coverage/internal/tess"
)

// Feature is anything the replay can hit-test by extent. Coverage cells
// implement it; so can caller-supplied vector features.
type Feature interface {
	Extent() Extent
}

// DrawBackend is the drawing collaborator the replay issues calls
// against. Buffer upload, shader plumbing and disposal live behind it.
type DrawBackend interface {
	// SetFillColor binds the fill color for subsequent draws.
	SetFillColor(color [4]uint8)

	// DrawElements draws the triangle index range [start, end).
	DrawElements(start, end int)

	// ClearDepth clears the depth buffer so non-contiguous redraws do
	// not fight earlier fragments.
	ClearDepth()
}

// PolygonReplay accumulates tessellated polygons into one vertex buffer
// and one triangle index buffer, grouped by fill style so the replay can
// issue one draw call per style group.
//
// startIndices and features are parallel: startIndices[i] is the index
// buffer offset where features[i] begins. styleIndices marks where each
// distinct fill style group begins and is only recorded when the style
// actually changed since the previous polygon.
type PolygonReplay struct {
	vertices []float64
	indexes  []uint32

	startIndices []int
	features     []Feature

	styleIndices []int
	styles       [][4]uint8

	fill        [4]uint8
	fillPending bool
}

// NewPolygonReplay creates an empty replay.
func NewPolygonReplay() *PolygonReplay {
	return &PolygonReplay{}
}

// SetFillStyle sets the fill color for subsequently drawn polygons. A new
// style group is only opened when the color differs from the previous
// polygon's.
func (r *PolygonReplay) SetFillStyle(color [4]uint8) {
	if len(r.styles) > 0 && !r.fillPending && color == r.fill {
		return
	}
	r.fill = color
	r.fillPending = true
}

// beginFeature opens a new style group if the pending fill differs from
// the last recorded one.
func (r *PolygonReplay) beginFeature() {
	if !r.fillPending {
		return
	}
	if len(r.styles) == 0 || r.fill != r.styles[len(r.styles)-1] {
		r.styleIndices = append(r.styleIndices, len(r.indexes))
		r.styles = append(r.styles, r.fill)
	}
	r.fillPending = false
}

// DrawPolygon tessellates one polygon (an outer ring plus optional hole
// rings, flat coordinates with the given stride) into the replay's
// buffers and records the feature's index range start.
func (r *PolygonReplay) DrawPolygon(coords []float64, holeIndexes []int, stride int, feature Feature) {
	r.beginFeature()
	r.startIndices = append(r.startIndices, len(r.indexes))
	r.features = append(r.features, feature)

	base := uint32(len(r.vertices) / 2)
	for i := 0; i < len(coords); i += stride {
		r.vertices = append(r.vertices, coords[i], coords[i+1])
	}
	for _, idx := range tess.Triangulate(coords, holeIndexes, stride) {
		r.indexes = append(r.indexes, base+idx)
	}
}

// DrawCell appends a pre-triangulated coverage cell, reusing the cell
// shape's index template instead of tessellating again.
func (r *PolygonReplay) DrawCell(coords []float64, template []uint32, feature Feature) {
	r.beginFeature()
	r.startIndices = append(r.startIndices, len(r.indexes))
	r.features = append(r.features, feature)

	base := uint32(len(r.vertices) / 2)
	r.vertices = append(r.vertices, coords...)
	for _, idx := range template {
		r.indexes = append(r.indexes, base+idx)
	}
}

// Vertices returns the flat vertex buffer.
func (r *PolygonReplay) Vertices() []float64 {
	return r.vertices
}

// Indexes returns the triangle index buffer.
func (r *PolygonReplay) Indexes() []uint32 {
	return r.indexes
}

// FeatureCount returns the number of drawn features.
func (r *PolygonReplay) FeatureCount() int {
	return len(r.features)
}

// Replay issues one batched draw per style group, iterating groups in
// reverse insertion order to minimize state changes against the backend's
// current state.
func (r *PolygonReplay) Replay(b DrawBackend) {
	end := len(r.indexes)
	for g := len(r.styleIndices) - 1; g >= 0; g-- {
		start := r.styleIndices[g]
		b.SetFillColor(r.styles[g])
		b.DrawElements(start, end)
		end = start
	}
}

// ReplaySkipFeatures replays like Replay but splits each style group's
// draw range around features for which skip returns true, clearing the
// depth buffer between the resulting sub-ranges so non-contiguous redraws
// do not z-fight.
func (r *PolygonReplay) ReplaySkipFeatures(b DrawBackend, skip func(Feature) bool) {
	groupEnd := len(r.indexes)
	feature := len(r.features) - 1

	for g := len(r.styleIndices) - 1; g >= 0; g-- {
		groupStart := r.styleIndices[g]
		b.SetFillColor(r.styles[g])

		end := groupEnd
		for feature >= 0 && r.startIndices[feature] >= groupStart {
			start := r.startIndices[feature]
			if skip(r.features[feature]) {
				if start < end {
					// Draw everything after the skipped feature, then
					// start a fresh sub-range before it.
					if featureEnd := r.featureEnd(feature); featureEnd < end {
						b.DrawElements(featureEnd, end)
						b.ClearDepth()
					}
				}
				end = start
			}
			feature--
		}
		if groupStart < end {
			b.DrawElements(groupStart, end)
		}
		groupEnd = groupStart
	}
}

// featureEnd returns the index buffer offset just past the given feature.
func (r *PolygonReplay) featureEnd(feature int) int {
	if feature+1 < len(r.startIndices) {
		return r.startIndices[feature+1]
	}
	return len(r.indexes)
}

// DrawHitDetectionOneByOne redraws features individually from top (last
// drawn) to bottom, invoking the callback after each. It returns the
// callback's result as soon as it is non-nil and never visits features
// below the hit. hitExtent, when non-nil, pre-filters features by extent.
func (r *PolygonReplay) DrawHitDetectionOneByOne(b DrawBackend, callback func(Feature) interface{}, hitExtent *Extent) interface{} {
	if len(r.styles) == 0 {
		return nil
	}
	group := len(r.styleIndices) - 1

	for feature := len(r.features) - 1; feature >= 0; feature-- {
		for group > 0 && r.startIndices[feature] < r.styleIndices[group] {
			group--
		}

		f := r.features[feature]
		if hitExtent != nil && !hitExtent.Intersects(f.Extent()) {
			continue
		}

		b.ClearDepth()
		b.SetFillColor(r.styles[group])
		b.DrawElements(r.startIndices[feature], r.featureEnd(feature))

		if result := callback(f); result != nil {
			return result
		}
	}
	return nil
}
