// Package raster implements the coverage data model: numeric grid storage,
// banded rasters with running statistics, and band alignment for composite
// styling.
package raster

// Matrix wraps raw grid storage, either a binary little-endian buffer or a
// plain float64 slice, together with the column stride and cell resolution.
//
// A matrix is immutable once constructed; bands replace the whole matrix
// rather than mutating cells in place.
type Matrix struct {
	binary     []byte
	values     []float64
	stride     int
	resolution [2]float64
}

// NewMatrix creates a matrix over a plain numeric slice.
//
// The stride is the number of columns; len(values) must be a multiple of it.
// dx and dy are the cell resolution in map units.
func NewMatrix(values []float64, stride int, dx, dy float64) (*Matrix, error) {
	if dx <= 0 || dy <= 0 {
		return nil, &ErrInvalidResolution{DX: dx, DY: dy}
	}
	if stride <= 0 || len(values)%stride != 0 {
		return nil, &ErrInvalidStride{Cells: len(values), Stride: stride}
	}
	return &Matrix{
		values:     values,
		stride:     stride,
		resolution: [2]float64{dx, dy},
	}, nil
}

// NewBinaryMatrix creates a matrix over a raw byte buffer holding
// little-endian elements of the given data type.
func NewBinaryMatrix(data []byte, dt DataType, stride int, dx, dy float64) (*Matrix, error) {
	if dx <= 0 || dy <= 0 {
		return nil, &ErrInvalidResolution{DX: dx, DY: dy}
	}
	if !dt.Valid() || len(data)%dt.Size() != 0 {
		return nil, &ErrInvalidBuffer{Bytes: len(data), DataType: dt}
	}
	cells := len(data) / dt.Size()
	if stride <= 0 || cells%stride != 0 {
		return nil, &ErrInvalidStride{Cells: cells, Stride: stride}
	}
	return &Matrix{
		binary:     data,
		stride:     stride,
		resolution: [2]float64{dx, dy},
	}, nil
}

// IsBinary reports whether the matrix is backed by a byte buffer.
func (m *Matrix) IsBinary() bool {
	return m.binary != nil
}

// Data returns the raw byte buffer, or nil for numeric matrices.
func (m *Matrix) Data() []byte {
	return m.binary
}

// Stride returns the number of columns per row.
func (m *Matrix) Stride() int {
	return m.stride
}

// Resolution returns the cell resolution (dx, dy) in map units.
func (m *Matrix) Resolution() (float64, float64) {
	return m.resolution[0], m.resolution[1]
}

// Values decodes the matrix into a float64 slice using the given data type.
// Numeric matrices return their backing slice directly; binary matrices are
// decoded element by element.
func (m *Matrix) Values(dt DataType) []float64 {
	if m.binary == nil {
		return m.values
	}
	info := typeRegistry[dt]
	out := make([]float64, len(m.binary)/info.size)
	for i := range out {
		out[i] = info.decode(m.binary, i)
	}
	return out
}

// CellCount returns the number of cells in the matrix for the given data
// type. Numeric matrices ignore the argument.
func (m *Matrix) CellCount(dt DataType) int {
	if m.binary == nil {
		return len(m.values)
	}
	return len(m.binary) / dt.Size()
}
