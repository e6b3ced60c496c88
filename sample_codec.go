package interp

import (
	"encoding/binary"
	"math"
)

// sampleCodec is what the doubling pass needs to know about a sample
// representation T.
type sampleCodec[T any] struct {
	size     int
	decode   func(b []byte) T
	encode   func(b []byte, v T)
	midpoint func(prev, cur T) T
}

type signedInt interface {
	~int16 | ~int32
}

type float interface {
	~float32 | ~float64
}

// intMidpoint rounds toward the lower value. The arithmetic runs on int64 so
// hi-lo can't overflow.
func intMidpoint[T signedInt](a, b T) T {
	lo, hi := int64(min(a, b)), int64(max(a, b))

	return T(lo + (hi-lo)/2)
}

func floatMidpoint[T float](a, b T) T {
	lo, hi := min(a, b), max(a, b)

	return lo + (hi-lo)/2
}

// int24Midpoint decodes both operands, averages them as int32 and packs the
// result again.
func int24Midpoint(a, b Int24) Int24 {
	lo, hi := Min24(a, b), Max24(a, b)

	return Int24From(intMidpoint(lo, hi))
}

var (
	int16Codec = sampleCodec[int16]{
		size:     2,
		decode:   func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) },
		encode:   func(b []byte, v int16) { binary.LittleEndian.PutUint16(b, uint16(v)) },
		midpoint: intMidpoint[int16],
	}
	int24Codec = sampleCodec[Int24]{
		size:     3,
		decode:   func(b []byte) Int24 { return Int24{b[0], b[1], b[2]} },
		encode:   func(b []byte, v Int24) { copy(b[:3], v[:]) },
		midpoint: int24Midpoint,
	}
	int32Codec = sampleCodec[int32]{
		size:     4,
		decode:   func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) },
		encode:   func(b []byte, v int32) { binary.LittleEndian.PutUint32(b, uint32(v)) },
		midpoint: intMidpoint[int32],
	}
	float32Codec = sampleCodec[float32]{
		size:     4,
		decode:   func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) },
		encode:   func(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) },
		midpoint: floatMidpoint[float32],
	}
	float64Codec = sampleCodec[float64]{
		size:     8,
		decode:   func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) },
		encode:   func(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) },
		midpoint: floatMidpoint[float64],
	}
)
