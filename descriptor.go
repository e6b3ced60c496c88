package interp

import (
	"fmt"
	"math"
	"time"
)

// SampleKind identifies one of the five interpolable sample representations.
type SampleKind int

const (
	KindUnsupported SampleKind = iota
	KindInt16
	KindInt24
	KindInt32
	KindFloat32
	KindFloat64
)

func (k SampleKind) String() string {
	switch k {
	case KindInt16:
		return "int16"
	case KindInt24:
		return "int24"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return "unsupported"
	}
}

// Descriptor holds the format metadata of one WAV file.
type Descriptor struct {
	AudioFormat   AudioFormat
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	// HasFact is set when a fact chunk was read (or must be written).
	HasFact bool
	// SampleLength is the fact chunk sample count.
	SampleLength uint32
	// DataSize is the length in bytes of the data chunk payload.
	DataSize uint32
}

// SampleKind maps the format code and bit depth to a sample representation.
func (d Descriptor) SampleKind() SampleKind {
	switch d.AudioFormat {
	case FormatPCM:
		switch d.BitsPerSample {
		case 16:
			return KindInt16
		case 24:
			return KindInt24
		case 32:
			return KindInt32
		}
	case FormatIEEEFloat:
		switch d.BitsPerSample {
		case 32:
			return KindFloat32
		case 64:
			return KindFloat64
		}
	}

	return KindUnsupported
}

// Validate reports whether the descriptor names a supported sample layout.
func (d Descriptor) Validate() error {
	if d.AudioFormat != FormatPCM && d.AudioFormat != FormatIEEEFloat {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, d.AudioFormat)
	}

	if d.SampleKind() == KindUnsupported {
		return fmt.Errorf("%w: %d-bit %s", ErrUnsupportedFormat, d.BitsPerSample, d.AudioFormat)
	}

	if d.NumChannels == 0 {
		return fmt.Errorf("%w: no channels", ErrUnsupportedFormat)
	}

	return nil
}

// BytesPerSample returns the storage size of a single sample.
func (d Descriptor) BytesPerSample() int {
	if d.BitsPerSample == 0 {
		return 0
	}

	return bytesPerSample(int(d.BitsPerSample))
}

// FrameSize returns the byte size of one sample for every channel.
func (d Descriptor) FrameSize() int {
	return int(d.NumChannels) * d.BytesPerSample()
}

// Frames returns the number of whole frames in the data chunk.
func (d Descriptor) Frames() int {
	frameSize := d.FrameSize()
	if frameSize == 0 {
		return 0
	}

	return int(d.DataSize) / frameSize
}

// Duration returns the play time of the data chunk.
func (d Descriptor) Duration() time.Duration {
	if d.SampleRate == 0 {
		return 0
	}

	return time.Duration(float64(d.Frames()) / float64(d.SampleRate) * float64(time.Second))
}

// Doubled returns the descriptor of the interpolated stream: sample rate,
// byte rate, fact sample length and data size are doubled, the bit depth is
// kept. A fact chunk is only carried for non-PCM formats.
func (d Descriptor) Doubled(opts HeaderOptions) (Descriptor, error) {
	doubled := []struct {
		name  string
		value uint32
	}{
		{"sample rate", d.SampleRate},
		{"byte rate", d.ByteRate},
		{"data size", d.DataSize},
		{"sample length", d.SampleLength},
	}

	for _, field := range doubled {
		if field.value > math.MaxUint32/2 {
			return Descriptor{}, fmt.Errorf("%w: %s %d", ErrOutputTooLarge, field.name, field.value)
		}
	}

	blockAlign := d.FrameSize()
	if opts.LegacyBlockAlign {
		blockAlign = int(d.NumChannels) * 2
	}

	if blockAlign > math.MaxUint16 {
		return Descriptor{}, fmt.Errorf("%w: block align %d", ErrOutputTooLarge, blockAlign)
	}

	out := d
	out.SampleRate = d.SampleRate * 2
	out.ByteRate = d.ByteRate * 2
	out.BlockAlign = uint16(blockAlign)
	out.SampleLength = d.SampleLength * 2
	out.DataSize = d.DataSize * 2
	out.HasFact = d.AudioFormat != FormatPCM

	return out, nil
}

// String implements the Stringer interface.
func (d Descriptor) String() string {
	return fmt.Sprintf("%d Hz @ %d bits %s, %d channel(s), %d avg bytes/sec, duration: %s",
		d.SampleRate, d.BitsPerSample, d.AudioFormat, d.NumChannels, d.ByteRate, d.Duration())
}
