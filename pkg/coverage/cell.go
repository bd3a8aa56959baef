package coverage

import (
	"github.com/mapflow/coverage/internal/tess"
)

// cellGeometry is the polygon of a single coverage cell relative to its
// centroid, with the triangle indexes used by the GPU path.
type cellGeometry struct {
	vertices []float64 // flat (x, y) pairs around the centroid
	indexes  []uint32  // triangulation of vertices
}

// vertexCount returns the number of polygon vertices per cell.
func (c *cellGeometry) vertexCount() int {
	return len(c.vertices) / 2
}

// cellShape produces the normalized cell polygon for a coverage type at
// the given resolution.
//
// Rectangular cells are axis-aligned rectangles with half-widths rx/2 and
// ry/2, split into two triangles. Hexagonal cells span the full ry
// vertically with a ry/4 notch on each slanted edge, fanned into four
// triangles. Custom cells scale the pattern's unit shape by (rx, ry) and
// run it through the shared tessellator, which handles concave outlines
// and arbitrary vertex counts.
func cellShape(typ CoverageType, rx, ry float64, pattern *Pattern) (*cellGeometry, error) {
	switch typ {
	case Rectangular:
		return &cellGeometry{
			vertices: []float64{
				-rx / 2, -ry / 2,
				rx / 2, -ry / 2,
				rx / 2, ry / 2,
				-rx / 2, ry / 2,
			},
			indexes: []uint32{0, 1, 2, 2, 3, 0},
		}, nil

	case Hexagonal:
		return &cellGeometry{
			vertices: []float64{
				0, -ry / 2,
				rx / 2, -ry / 4,
				rx / 2, ry / 4,
				0, ry / 2,
				-rx / 2, ry / 4,
				-rx / 2, -ry / 4,
			},
			indexes: []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 5},
		}, nil

	case Custom:
		if pattern == nil || len(pattern.Shape) < 6 {
			return nil, &ErrMissingPattern{}
		}
		vertices := make([]float64, len(pattern.Shape))
		for i := 0; i < len(pattern.Shape); i += 2 {
			vertices[i] = pattern.Shape[i] * rx
			vertices[i+1] = pattern.Shape[i+1] * ry
		}
		return &cellGeometry{
			vertices: vertices,
			indexes:  tess.Triangulate(vertices, nil, 2),
		}, nil
	}

	return nil, &ErrMissingPattern{}
}
