package coverage

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/mapflow/coverage/internal/metrics"
	"github.com/mapflow/coverage/pkg/raster"
)

// cellFeature is one placed coverage cell: its absolute polygon, fill
// color and bounding box. Cell features are the payloads of the grid's
// spatial index and the features of the polygon replay.
type cellFeature struct {
	id     int
	coords []float64 // absolute (x, y) pairs
	color  [4]uint8
	bbox   rtreego.Rect
	extent Extent
}

// Bounds implements rtreego.Spatial.
func (c *cellFeature) Bounds() rtreego.Rect {
	return c.bbox
}

// Extent implements Feature.
func (c *cellFeature) Extent() Extent {
	return c.extent
}

// grid is the spatially indexed cell geometry of one styled band. It is
// ephemeral: renderers rebuild it whenever the style checksum or source
// revision changes, and it is always either fully built or absent.
type grid struct {
	tree        *rtreego.Rtree
	cell        *cellGeometry
	cellCount   int
	resolution  [2]float64
	vertexCount int
}

// buildGrid walks the styled band's matrix and inserts one positioned cell
// polygon per non-null cell (alpha byte zero marks nodata) into an R-tree.
//
// Rectangular and hexagonal cells derive their centroid from
// origin + index*resolution, with hexagonal rows packed at 3/4 cell pitch
// and odd rows shifted right by half a cell. Custom patterns accumulate
// the column and row transforms across the walk, rotating each cell
// counter-clockwise about its own centroid. transform, when non-nil,
// reprojects every vertex from the source projection to the view.
func buildGrid(styled *raster.Band, typ CoverageType, pattern *Pattern, transform TransformFunc) (*grid, error) {
	dx, dy := styled.Matrix().Resolution()
	cell, err := cellShape(typ, dx, dy, pattern)
	if err != nil {
		return nil, err
	}

	data := styled.Matrix().Data()
	cols := styled.Cols() / 4
	rows := styled.Rows()
	origin := styled.Origin()

	g := &grid{
		tree:        rtreego.NewTree(2, 25, 50),
		cell:        cell,
		resolution:  [2]float64{dx, dy},
		vertexCount: cell.vertexCount(),
	}

	walk := newPatternWalk(typ, pattern, origin, dx, dy)
	for row := 0; row < rows; row++ {
		walk.startRow(row)
		for col := 0; col < cols; col++ {
			cx, cy, angle := walk.position()
			walk.nextColumn()

			idx := (row*cols + col) * 4
			if data[idx+3] == 0 {
				continue // nodata cell, flagged by the alpha byte
			}

			f := placeCell(row*cols+col, cell, cx, cy, angle, transform)
			f.color = [4]uint8{data[idx], data[idx+1], data[idx+2], 255}
			g.tree.Insert(f)
			g.cellCount++
		}
	}

	metrics.IndexedCells.Set(float64(g.cellCount))
	return g, nil
}

// placeCell translates (and rotates, for custom patterns) the unit cell to
// its centroid, reprojecting when a transform is supplied, and computes
// its bounding box.
func placeCell(id int, cell *cellGeometry, cx, cy, angle float64, transform TransformFunc) *cellFeature {
	coords := make([]float64, len(cell.vertices))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	sin, cos := 0.0, 1.0
	if angle != 0 {
		sin, cos = math.Sincos(angle)
	}

	for i := 0; i < len(cell.vertices); i += 2 {
		x := cell.vertices[i]
		y := cell.vertices[i+1]
		if angle != 0 {
			x, y = x*cos-y*sin, x*sin+y*cos
		}
		x += cx
		y += cy
		if transform != nil {
			x, y = transform(x, y)
		}
		coords[i] = x
		coords[i+1] = y
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	// rtreego rejects non-positive side lengths; degenerate cells keep a
	// sliver of a bounding box.
	w := math.Max(maxX-minX, 1e-9)
	h := math.Max(maxY-minY, 1e-9)
	rect, _ := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{w, h})
	return &cellFeature{
		id:     id,
		coords: coords,
		bbox:   rect,
		extent: Extent{minX, minY, maxX, maxY},
	}
}

// query returns the cell features intersecting the extent.
func (g *grid) query(extent Extent) []*cellFeature {
	rect, err := rtreego.NewRect(rtreego.Point{extent[0], extent[1]},
		[]float64{math.Max(extent.Width(), 1e-9), math.Max(extent.Height(), 1e-9)})
	if err != nil {
		return nil
	}
	matches := g.tree.SearchIntersect(rect)
	out := make([]*cellFeature, len(matches))
	for i, m := range matches {
		out[i] = m.(*cellFeature)
	}
	return out
}

// patternWalk tracks the cumulative position and rotation of the grid
// walk for every coverage type.
type patternWalk struct {
	typ     CoverageType
	pattern *Pattern
	origin  [2]float64
	dx, dy  float64

	// cumulative state for custom patterns
	rowX, rowY float64
	rowAngle   float64
	x, y       float64
	angle      float64

	// current indexes for regular tilings
	row, col int
}

func newPatternWalk(typ CoverageType, pattern *Pattern, origin [2]float64, dx, dy float64) *patternWalk {
	return &patternWalk{
		typ:     typ,
		pattern: pattern,
		origin:  origin,
		dx:      dx,
		dy:      dy,
		rowX:    origin[0],
		rowY:    origin[1],
		x:       origin[0],
		y:       origin[1],
	}
}

// startRow positions the walk at the first cell of the given row.
func (w *patternWalk) startRow(row int) {
	w.row = row
	w.col = 0
	if w.typ != Custom {
		return
	}

	if row > 0 {
		// Advance the row anchor by the row translation in the current
		// row frame, then accumulate the row rotation.
		tx, ty := rotate(w.pattern.Row.Translate[0]*w.dx, w.pattern.Row.Translate[1]*w.dy, w.rowAngle)
		w.rowX += tx
		w.rowY += ty
		w.rowAngle += w.pattern.Row.Rotate
	}

	w.x, w.y = w.rowX, w.rowY
	w.angle = w.rowAngle
	if row%2 == 1 {
		// Odd rows shift by the pattern offset, producing brick and
		// staggered tilings.
		ox, oy := rotate(w.pattern.Row.Offset*w.dx, 0, w.rowAngle)
		w.x += ox
		w.y += oy
	}
}

// position returns the centroid and rotation of the current cell.
func (w *patternWalk) position() (float64, float64, float64) {
	switch w.typ {
	case Rectangular:
		return w.origin[0] + float64(w.col)*w.dx,
			w.origin[1] + float64(w.row)*w.dy, 0

	case Hexagonal:
		x := w.origin[0] + float64(w.col)*w.dx
		if w.row%2 == 1 {
			x += w.dx / 2
		}
		return x, w.origin[1] + float64(w.row)*w.dy*0.75, 0

	default:
		return w.x, w.y, w.angle
	}
}

// nextColumn advances the walk one cell to the right.
func (w *patternWalk) nextColumn() {
	w.col++
	if w.typ != Custom {
		return
	}
	tx, ty := rotate(w.pattern.Column.Translate[0]*w.dx, w.pattern.Column.Translate[1]*w.dy, w.angle)
	w.x += tx
	w.y += ty
	w.angle += w.pattern.Column.Rotate
}

// rotate turns the vector (x, y) counter-clockwise by angle radians.
func rotate(x, y, angle float64) (float64, float64) {
	if angle == 0 {
		return x, y
	}
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}
