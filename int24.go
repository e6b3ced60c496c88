package interp

import "github.com/go-audio/audio"

// Int24 is a packed little-endian signed 24-bit sample.
type Int24 [3]byte

// Int24From packs the low 24 bits of v. Values outside the 24-bit range are
// truncated, not saturated.
func Int24From(v int32) Int24 {
	var out Int24
	copy(out[:], audio.Int32toInt24LEBytes(v))

	return out
}

// Int32 sign-extends the sample using bit 23.
func (s Int24) Int32() int32 {
	return audio.Int24LETo32(s[:])
}

// Min24 returns the smaller of a and b, compared as signed values.
func Min24(a, b Int24) int32 {
	return min(a.Int32(), b.Int32())
}

// Max24 returns the larger of a and b, compared as signed values.
func Max24(a, b Int24) int32 {
	return max(a.Int32(), b.Int32())
}
