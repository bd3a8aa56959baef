package raster

import (
	"math"
)

// Statistics summarizes the non-null cells of a band.
//
// Count is the number of cells not equal to the band's null value. When
// Count is zero, Min is +Inf, Max is -Inf and Variance is NaN. Variance is
// the population variance (sum of squared deviations divided by the raw
// count), kept as NaN for empty bands rather than guarded to zero.
type Statistics struct {
	Min      float64
	Max      float64
	Sum      float64
	Count    int
	Variance float64
}

// Band is a single coverage layer: a matrix plus spatial metadata and
// eagerly maintained statistics over its non-null cells.
//
// A band is owned by exactly one coverage source (or held transiently by a
// styling or alignment computation that produces a derived band).
type Band struct {
	matrix    *Matrix
	extent    [4]float64
	origin    [2]float64
	nullValue float64
	dataType  DataType
	stats     Statistics

	// observer is notified after any mutation of the band. It is set by
	// the owning coverage source; at most one observer per band.
	observer func(*Band)
}

// NewBand creates a band over the given matrix.
//
// extent is (minX, minY, maxX, maxY); origin is the centroid of the
// lower-left cell. nullValue marks no-data cells; pass NaN for bands
// without a no-data value (NaN compares unequal to every cell, so no cell
// is excluded). Statistics are computed immediately.
func NewBand(matrix *Matrix, extent [4]float64, origin [2]float64, nullValue float64, dt DataType) *Band {
	b := &Band{
		matrix:    matrix,
		extent:    extent,
		origin:    origin,
		nullValue: nullValue,
		dataType:  dt,
	}
	b.calculateStatistics()
	return b
}

// Matrix returns the band's grid storage.
func (b *Band) Matrix() *Matrix {
	return b.matrix
}

// Extent returns (minX, minY, maxX, maxY) in map units.
func (b *Band) Extent() [4]float64 {
	return b.extent
}

// Origin returns the centroid of the lower-left cell.
func (b *Band) Origin() [2]float64 {
	return b.origin
}

// NullValue returns the band's no-data value (NaN when unset).
func (b *Band) NullValue() float64 {
	return b.nullValue
}

// DataType returns the element type of the band's buffer.
func (b *Band) DataType() DataType {
	return b.dataType
}

// Statistics returns the current statistics over non-null cells.
func (b *Band) Statistics() Statistics {
	return b.stats
}

// Values returns the band's cells decoded to float64.
func (b *Band) Values() []float64 {
	return b.matrix.Values(b.dataType)
}

// Cols returns the number of columns.
func (b *Band) Cols() int {
	return b.matrix.Stride()
}

// Rows returns the number of rows.
func (b *Band) Rows() int {
	return b.matrix.CellCount(b.dataType) / b.matrix.Stride()
}

// Value returns the cell at the given column and row. Row 0 is the
// lower-left row of the grid.
func (b *Band) Value(col, row int) float64 {
	return b.Values()[row*b.matrix.Stride()+col]
}

// SetNullValue changes the band's no-data value, recomputes statistics and
// notifies the registered observer.
func (b *Band) SetNullValue(nullValue float64) {
	b.nullValue = nullValue
	b.calculateStatistics()
	b.notify()
}

// SetMatrix replaces the band's grid storage, recomputes statistics and
// notifies the registered observer.
func (b *Band) SetMatrix(m *Matrix) {
	b.matrix = m
	b.calculateStatistics()
	b.notify()
}

// OnChange registers the observer called after band mutations. The owning
// coverage source registers itself here; registering replaces any previous
// observer.
func (b *Band) OnChange(fn func(*Band)) {
	b.observer = fn
}

func (b *Band) notify() {
	if b.observer != nil {
		b.observer(b)
	}
}

// calculateStatistics makes two passes over the cells: min/max/sum/count
// over cells not equal to the null value, then the mean squared deviation
// using the first pass's mean.
func (b *Band) calculateStatistics() {
	values := b.Values()

	stats := Statistics{
		Min: math.Inf(1),
		Max: math.Inf(-1),
	}
	for _, v := range values {
		if v == b.nullValue {
			continue
		}
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		stats.Sum += v
		stats.Count++
	}

	// Population variance over the raw count; 0/0 yields NaN for empty
	// bands, matching the Statistics contract.
	mean := stats.Sum / float64(stats.Count)
	deltaSum := 0.0
	for _, v := range values {
		if v == b.nullValue {
			continue
		}
		deltaSum += (v - mean) * (v - mean)
	}
	stats.Variance = deltaSum / float64(stats.Count)

	b.stats = stats
}
