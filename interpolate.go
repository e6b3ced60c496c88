package interp

import "fmt"

// Interpolate returns the doubled-rate version of samples, which holds
// interleaved frames in the layout described by desc. The result has twice
// as many frames: each original frame is preceded by the midpoint between it
// and the previous frame, the first one being averaged with silence.
func Interpolate(desc Descriptor, samples []byte) ([]byte, error) {
	err := checkInterpolation(desc, samples)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, 2*len(samples))
	runDouble(desc, dst, samples)

	return dst, nil
}

// InterpolateInto is Interpolate writing into dst, which must hold at least
// 2*len(src) bytes.
func InterpolateInto(desc Descriptor, dst, src []byte) error {
	err := checkInterpolation(desc, src)
	if err != nil {
		return err
	}

	if len(dst) < 2*len(src) {
		return fmt.Errorf("%w: %d bytes for %d doubled bytes", ErrShortBuffer, len(dst), 2*len(src))
	}

	runDouble(desc, dst, src)

	return nil
}

func checkInterpolation(desc Descriptor, src []byte) error {
	err := desc.Validate()
	if err != nil {
		return err
	}

	frameSize := desc.FrameSize()
	if len(src)%frameSize != 0 {
		return fmt.Errorf("%d bytes for %d-byte frames: %w", len(src), frameSize, ErrPartialFrame)
	}

	return nil
}

func runDouble(desc Descriptor, dst, src []byte) {
	channels := int(desc.NumChannels)

	switch desc.SampleKind() {
	case KindInt16:
		double(int16Codec, channels, dst, src)
	case KindInt24:
		double(int24Codec, channels, dst, src)
	case KindInt32:
		double(int32Codec, channels, dst, src)
	case KindFloat32:
		double(float32Codec, channels, dst, src)
	case KindFloat64:
		double(float64Codec, channels, dst, src)
	}
}

// double is the interpolation pass shared by every sample type. Each frame
// depends on the previous one through history, so frames are processed in
// order.
func double[T any](c sampleCodec[T], channels int, dst, src []byte) {
	frameSize := channels * c.size
	history := make([]T, channels)

	out := 0
	for in := 0; in+frameSize <= len(src); in += frameSize {
		frame := src[in : in+frameSize]

		for ch := 0; ch < channels; ch++ {
			off := ch * c.size
			cur := c.decode(frame[off : off+c.size])
			c.encode(dst[out+off:out+off+c.size], c.midpoint(history[ch], cur))
			history[ch] = cur
		}

		out += frameSize

		// originals are copied, not re-encoded, so they stay bit-exact.
		copy(dst[out:out+frameSize], frame)
		out += frameSize
	}
}
