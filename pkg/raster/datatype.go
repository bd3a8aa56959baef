package raster

import (
	"encoding/binary"
	"math"
)

// DataType identifies the element type of a binary coverage buffer.
type DataType int

const (
	Uint8 DataType = iota
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Float32
	Float64
)

// typeInfo describes how to move one element of a data type in and out of a
// little-endian byte buffer. The registry below is the single closed mapping
// from DataType to element layout; nothing else in the module reflects on
// buffer types.
type typeInfo struct {
	size   int
	decode func(buf []byte, i int) float64
	encode func(buf []byte, i int, v float64)
}

var typeRegistry = map[DataType]typeInfo{
	Uint8: {
		size:   1,
		decode: func(buf []byte, i int) float64 { return float64(buf[i]) },
		encode: func(buf []byte, i int, v float64) { buf[i] = uint8(v) },
	},
	Int8: {
		size:   1,
		decode: func(buf []byte, i int) float64 { return float64(int8(buf[i])) },
		encode: func(buf []byte, i int, v float64) { buf[i] = uint8(int8(v)) },
	},
	Uint16: {
		size:   2,
		decode: func(buf []byte, i int) float64 { return float64(binary.LittleEndian.Uint16(buf[i*2:])) },
		encode: func(buf []byte, i int, v float64) { binary.LittleEndian.PutUint16(buf[i*2:], uint16(v)) },
	},
	Int16: {
		size:   2,
		decode: func(buf []byte, i int) float64 { return float64(int16(binary.LittleEndian.Uint16(buf[i*2:]))) },
		encode: func(buf []byte, i int, v float64) { binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v))) },
	},
	Uint32: {
		size:   4,
		decode: func(buf []byte, i int) float64 { return float64(binary.LittleEndian.Uint32(buf[i*4:])) },
		encode: func(buf []byte, i int, v float64) { binary.LittleEndian.PutUint32(buf[i*4:], uint32(v)) },
	},
	Int32: {
		size:   4,
		decode: func(buf []byte, i int) float64 { return float64(int32(binary.LittleEndian.Uint32(buf[i*4:]))) },
		encode: func(buf []byte, i int, v float64) { binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(v))) },
	},
	Float32: {
		size: 4,
		decode: func(buf []byte, i int) float64 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
		},
		encode: func(buf []byte, i int, v float64) {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
		},
	},
	Float64: {
		size: 8,
		decode: func(buf []byte, i int) float64 {
			return math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
		},
		encode: func(buf []byte, i int, v float64) {
			binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
		},
	},
}

// Size returns the element size of the data type in bytes.
func (dt DataType) Size() int {
	return typeRegistry[dt].size
}

// Valid reports whether dt is a known data type.
func (dt DataType) Valid() bool {
	_, ok := typeRegistry[dt]
	return ok
}

func (dt DataType) String() string {
	switch dt {
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Uint32:
		return "uint32"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "unknown"
}
