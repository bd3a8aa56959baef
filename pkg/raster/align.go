package raster

import (
	"math"
)

// Align resamples the given bands onto a common grid so that a composite
// style can read them cell by cell.
//
// The target grid covers the union of the input extents at the finest
// (smallest) dx and dy found among the inputs. Each band is sampled nearest
// neighbour; target cells outside a band's extent receive nullValue, which
// also becomes the null value of every aligned band.
//
// Bands that already share extent, resolution and stride are returned as
// constructed copies without value changes.
func Align(bands []*Band, nullValue float64) ([]*Band, error) {
	if len(bands) == 0 {
		return nil, nil
	}

	extent := bands[0].Extent()
	dx, dy := bands[0].Matrix().Resolution()
	for _, b := range bands[1:] {
		e := b.Extent()
		extent[0] = math.Min(extent[0], e[0])
		extent[1] = math.Min(extent[1], e[1])
		extent[2] = math.Max(extent[2], e[2])
		extent[3] = math.Max(extent[3], e[3])
		bdx, bdy := b.Matrix().Resolution()
		dx = math.Min(dx, bdx)
		dy = math.Min(dy, bdy)
	}

	cols := int(math.Round((extent[2] - extent[0]) / dx))
	rows := int(math.Round((extent[3] - extent[1]) / dy))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	origin := [2]float64{extent[0] + dx/2, extent[1] + dy/2}

	aligned := make([]*Band, len(bands))
	for i, b := range bands {
		values := make([]float64, cols*rows)
		srcExtent := b.Extent()
		srcDX, srcDY := b.Matrix().Resolution()
		srcValues := b.Values()
		srcCols := b.Cols()
		srcRows := b.Rows()
		srcNull := b.NullValue()

		for row := 0; row < rows; row++ {
			cy := origin[1] + float64(row)*dy
			for col := 0; col < cols; col++ {
				cx := origin[0] + float64(col)*dx
				idx := row*cols + col
				if cx < srcExtent[0] || cx > srcExtent[2] || cy < srcExtent[1] || cy > srcExtent[3] {
					values[idx] = nullValue
					continue
				}
				srcCol := int((cx - srcExtent[0]) / srcDX)
				srcRow := int((cy - srcExtent[1]) / srcDY)
				if srcCol >= srcCols {
					srcCol = srcCols - 1
				}
				if srcRow >= srcRows {
					srcRow = srcRows - 1
				}
				v := srcValues[srcRow*srcCols+srcCol]
				if v == srcNull {
					v = nullValue
				}
				values[idx] = v
			}
		}

		m, err := NewMatrix(values, cols, dx, dy)
		if err != nil {
			return nil, err
		}
		aligned[i] = NewBand(m, extent, origin, nullValue, Float64)
	}

	return aligned, nil
}
