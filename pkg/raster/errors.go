package raster

import (
	"fmt"
)

// ErrInvalidStride indicates a buffer whose cell count is not a whole
// number of rows.
type ErrInvalidStride struct {
	Cells  int
	Stride int
}

func (e *ErrInvalidStride) Error() string {
	return fmt.Sprintf("invalid stride: %d cells is not a multiple of stride %d", e.Cells, e.Stride)
}

// ErrInvalidBuffer indicates a binary buffer whose byte length is not a
// whole number of elements for the declared data type.
type ErrInvalidBuffer struct {
	Bytes    int
	DataType DataType
}

func (e *ErrInvalidBuffer) Error() string {
	return fmt.Sprintf("invalid buffer: %d bytes is not a multiple of %s element size %d",
		e.Bytes, e.DataType, e.DataType.Size())
}

// ErrInvalidResolution indicates a non-positive cell resolution.
type ErrInvalidResolution struct {
	DX, DY float64
}

func (e *ErrInvalidResolution) Error() string {
	return fmt.Sprintf("invalid resolution: (%g, %g) must be positive", e.DX, e.DY)
}
