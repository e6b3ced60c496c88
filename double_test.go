package interp

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoublePCM16(t *testing.T) {
	in := pcm16File(10, 0, -10)

	out, err := Double(in, HeaderOptions{})
	require.NoError(t, err)

	f, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, uint32(44100), f.SampleRate)
	require.Equal(t, uint32(88200), f.ByteRate)
	require.Equal(t, 6, f.Frames())
	require.Equal(t, le16(5, 10, 5, 0, -5, -10), f.Data)
	require.Equal(t, uint32(len(out)-8), binary.LittleEndian.Uint32(out[4:8]))
}

func TestDoubleReparses(t *testing.T) {
	peak2 := peakChunkOf(1, 42, PeakPosition{Value: 0.5, Position: 1}, PeakPosition{Value: 0.25, Position: 0})

	tests := []struct {
		name string
		in   []byte
	}{
		{name: "pcm16", in: buildWAV(fmtChunkOf(1, 2, 44100, 16), dataChunkOf(le16(1, 2, 3, 4)))},
		{name: "pcm16 with fact", in: buildWAV(fmtChunkOf(1, 1, 44100, 16), factChunkOf(2), dataChunkOf(le16(1, 2)))},
		{name: "pcm24 odd size", in: buildWAV(fmtChunkOf(1, 1, 44100, 24), dataChunkOf(le24(-5)))},
		{name: "pcm32", in: buildWAV(fmtChunkOf(1, 2, 96000, 32), dataChunkOf(le32(1, -1, 7, -7)))},
		{name: "float32", in: buildWAV(fmtChunkOf(3, 2, 48000, 32), factChunkOf(2), peak2, dataChunkOf(lef32(0.5, 0.25, 0.1, -0.1)))},
		{name: "float64", in: buildWAV(fmtChunkOf(3, 1, 8000, 64), factChunkOf(3), dataChunkOf(lef64(1, 0, -1)))},
		{name: "empty data", in: buildWAV(fmtChunkOf(1, 1, 8000, 16), dataChunkOf(nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Parse(tt.in)
			require.NoError(t, err)

			out, err := Double(tt.in, HeaderOptions{})
			require.NoError(t, err)

			dst, err := Parse(out)
			require.NoError(t, err)

			require.Equal(t, src.AudioFormat, dst.AudioFormat)
			require.Equal(t, src.BitsPerSample, dst.BitsPerSample)
			require.Equal(t, src.NumChannels, dst.NumChannels)
			require.Equal(t, 2*src.SampleRate, dst.SampleRate)
			require.Equal(t, 2*src.ByteRate, dst.ByteRate)
			require.Equal(t, 2*src.DataSize, dst.DataSize)
			require.Equal(t, 2*src.Frames(), dst.Frames())
			require.Equal(t, uint16(src.FrameSize()), dst.BlockAlign)
			require.Equal(t, uint32(len(out)-8), binary.LittleEndian.Uint32(out[4:8]))

			if src.AudioFormat == FormatIEEEFloat {
				require.Equal(t, 2*src.SampleLength, dst.SampleLength)
			}

			frameSize := src.FrameSize()
			for i := 0; i < src.Frames(); i++ {
				want := src.Data[i*frameSize : (i+1)*frameSize]
				got := dst.Data[(2*i+1)*frameSize : (2*i+2)*frameSize]
				require.True(t, bytes.Equal(want, got), "frame %d differs", i)
			}
		})
	}
}

func TestDoublePeakPassthrough(t *testing.T) {
	peak := peakChunkOf(1, 7, PeakPosition{Value: 0.8, Position: 2})
	in := buildWAV(fmtChunkOf(3, 1, 22050, 32), factChunkOf(3), peak, dataChunkOf(lef32(0.1, 0.4, 0.8)))

	out, err := Double(in, HeaderOptions{})
	require.NoError(t, err)

	chunks, err := parseWavChunks(out)
	require.NoError(t, err)
	require.Equal(t, []string{"fmt ", "fact", "PEAK", "data"}, chunkIDs(chunks))
	require.Equal(t, peak.data, findChunk(chunks, "PEAK").data)
	require.Equal(t, uint32(6), binary.LittleEndian.Uint32(findChunk(chunks, "fact").data))
}

func TestDoubleLegacyBlockAlignReparses(t *testing.T) {
	in := buildWAV(fmtChunkOf(1, 2, 44100, 24), dataChunkOf(le24(1, 2, 3, 4)))

	out, err := Double(in, HeaderOptions{LegacyBlockAlign: true})
	require.NoError(t, err)

	f, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, uint16(4), f.BlockAlign)
	require.Equal(t, 4, f.Frames())
}

func TestDoubleTwiceQuadruplesFrames(t *testing.T) {
	once, err := Double(pcm16File(100, -100, 50), HeaderOptions{})
	require.NoError(t, err)

	twice, err := Double(once, HeaderOptions{})
	require.NoError(t, err)

	f, err := Parse(twice)
	require.NoError(t, err)
	require.Equal(t, uint32(4*22050), f.SampleRate)
	require.Equal(t, 12, f.Frames())
}

func TestDoubleRejectsInvalidInput(t *testing.T) {
	_, err := Double(buildForm("RIFX", "WAVE"), HeaderOptions{})
	require.ErrorIs(t, err, ErrUnsupportedContainer)

	_, err = Double(buildWAV(fmtChunkOf(7, 1, 8000, 8), dataChunkOf([]byte{1, 2})), HeaderOptions{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteDoubledMatchesDouble(t *testing.T) {
	in := pcm16File(1, 2, 3)

	f, err := Parse(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteDoubled(&buf, HeaderOptions{}))

	want, err := Double(in, HeaderOptions{})
	require.NoError(t, err)
	require.Equal(t, want, buf.Bytes())
}

func TestDescriptorString(t *testing.T) {
	f, err := Parse(pcm16File(make([]int16, 22050)...))
	require.NoError(t, err)
	require.Equal(t, "22050 Hz @ 16 bits PCM, 1 channel(s), 44100 avg bytes/sec, duration: 1s", f.String())
}

func TestDescriptorDoubledOverflow(t *testing.T) {
	base := Descriptor{AudioFormat: FormatIEEEFloat, NumChannels: 1, SampleRate: 8000, ByteRate: 32000, BitsPerSample: 32}

	tests := []struct {
		name   string
		modify func(d *Descriptor)
		want   string
	}{
		{name: "sample rate", modify: func(d *Descriptor) { d.SampleRate = math.MaxUint32 }, want: "sample rate 4294967295"},
		{name: "byte rate", modify: func(d *Descriptor) { d.ByteRate = math.MaxUint32/2 + 1 }, want: "byte rate 2147483648"},
		{name: "data size", modify: func(d *Descriptor) { d.DataSize = math.MaxUint32/2 + 2 }, want: "data size 2147483649"},
		{name: "sample length", modify: func(d *Descriptor) { d.SampleLength = math.MaxUint32 / 2 * 2 }, want: "sample length 4294967294"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := base
			tt.modify(&desc)

			_, err := desc.Doubled(HeaderOptions{})
			require.ErrorIs(t, err, ErrOutputTooLarge)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestDoubleTrimsOversizedPeak(t *testing.T) {
	peak := peakChunkOf(1, 7, PeakPosition{Value: 0.8, Position: 2})
	oversized := rawChunk("PEAK", append(append([]byte(nil), peak.data...), 0xAA, 0xBB, 0xCC, 0xDD))
	in := buildWAV(fmtChunkOf(3, 1, 22050, 32), factChunkOf(1), oversized, dataChunkOf(lef32(0.5)))

	out, err := Double(in, HeaderOptions{})
	require.NoError(t, err)

	chunks, err := parseWavChunks(out)
	require.NoError(t, err)

	emitted := findChunk(chunks, "PEAK")
	require.NotNil(t, emitted)
	require.Equal(t, uint32(16), emitted.size)
	require.Equal(t, peak.data, emitted.data)
	require.Equal(t, uint32(len(out)-8), binary.LittleEndian.Uint32(out[4:8]))
}
