package interp

import (
	"errors"
	"fmt"
)

// AudioFormat is the format code stored in the fmt chunk.
type AudioFormat uint16

const (
	// FormatPCM is linear integer PCM.
	FormatPCM AudioFormat = 1
	// FormatIEEEFloat is IEEE 754 floating point.
	FormatIEEEFloat AudioFormat = 3
)

func (f AudioFormat) String() string {
	switch f {
	case FormatPCM:
		return "PCM"
	case FormatIEEEFloat:
		return "IEEE float"
	default:
		return fmt.Sprintf("format tag %d", uint16(f))
	}
}

var (
	// ErrUnsupportedContainer is returned when the input is not a RIFF/WAVE file.
	ErrUnsupportedContainer = errors.New("unsupported container")
	// ErrUnsupportedFormat is returned for a format code or bit depth that
	// can't be interpolated.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrTruncatedInput is returned when the input ends before a declared
	// chunk is complete, or a mandatory chunk is missing.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrPartialFrame is returned when the sample data doesn't hold a whole
	// number of frames.
	ErrPartialFrame = fmt.Errorf("%w: partial trailing frame", ErrTruncatedInput)
	// ErrChunkOrder is returned when a known chunk shows up out of place.
	ErrChunkOrder = errors.New("unexpected chunk order")
	// ErrMissingFact is returned for IEEE float files without a fact chunk.
	ErrMissingFact = errors.New("fact chunk missing")
	// ErrOutputTooLarge is returned when the doubled file doesn't fit the
	// 32-bit RIFF size fields.
	ErrOutputTooLarge = errors.New("doubled output too large")
	// ErrShortBuffer is returned when the destination can't hold the doubled
	// samples.
	ErrShortBuffer = errors.New("destination buffer too small")
)

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}
