package interp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWavChunks lists the chunks of an encoded file by their declared sizes.
func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

// parseHeaderChunks lists the chunks of a serialized header, which ends with
// the data chunk header. The announced payload is filled with zeros.
func parseHeaderChunks(hdr []byte) ([]testChunk, error) {
	if len(hdr) < 8 {
		return nil, errFileTooSmall
	}

	dataSize := binary.LittleEndian.Uint32(hdr[len(hdr)-4:])
	full := append(append([]byte(nil), hdr...), make([]byte, dataSize)...)

	return parseWavChunks(full)
}

func chunkIDs(chunks []testChunk) []string {
	out := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		out = append(out, ch.id)
	}

	return out
}

func findChunk(chunks []testChunk, id string) *testChunk {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i]
		}
	}

	return nil
}

// buildWAV assembles a RIFF/WAVE file from chunks, padding odd payloads.
// The RIFF size is computed from the content.
func buildWAV(chunks ...testChunk) []byte {
	return buildForm("RIFF", "WAVE", chunks...)
}

func buildForm(riffID, form string, chunks ...testChunk) []byte {
	out := make([]byte, 0, 64)
	out = append(out, riffID...)
	out = binary.LittleEndian.AppendUint32(out, 0)
	out = append(out, form...)

	for _, ch := range chunks {
		out = append(out, ch.id...)
		out = binary.LittleEndian.AppendUint32(out, ch.size)
		out = append(out, ch.data...)

		if len(ch.data)%2 == 1 {
			out = append(out, 0)
		}
	}

	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))

	return out
}

func rawChunk(id string, data []byte) testChunk {
	return testChunk{id: id, size: uint32(len(data)), data: data}
}

func fmtChunkOf(format, channels uint16, rate uint32, bits uint16) testChunk {
	blockAlign := channels * uint16(bytesPerSample(int(bits)))

	data := make([]byte, 0, 16)
	data = binary.LittleEndian.AppendUint16(data, format)
	data = binary.LittleEndian.AppendUint16(data, channels)
	data = binary.LittleEndian.AppendUint32(data, rate)
	data = binary.LittleEndian.AppendUint32(data, rate*uint32(blockAlign))
	data = binary.LittleEndian.AppendUint16(data, blockAlign)
	data = binary.LittleEndian.AppendUint16(data, bits)

	return rawChunk("fmt ", data)
}

func factChunkOf(sampleLength uint32) testChunk {
	return rawChunk("fact", binary.LittleEndian.AppendUint32(nil, sampleLength))
}

func peakChunkOf(version, timestamp uint32, peaks ...PeakPosition) testChunk {
	data := binary.LittleEndian.AppendUint32(nil, version)
	data = binary.LittleEndian.AppendUint32(data, timestamp)

	for _, p := range peaks {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(p.Value))
		data = binary.LittleEndian.AppendUint32(data, p.Position)
	}

	return rawChunk("PEAK", data)
}

func dataChunkOf(samples []byte) testChunk {
	return rawChunk("data", samples)
}

func le16(vals ...int16) []byte {
	out := make([]byte, 0, 2*len(vals))
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint16(out, uint16(v))
	}

	return out
}

func le24(vals ...int32) []byte {
	out := make([]byte, 0, 3*len(vals))
	for _, v := range vals {
		s := Int24From(v)
		out = append(out, s[:]...)
	}

	return out
}

func le32(vals ...int32) []byte {
	out := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint32(out, uint32(v))
	}

	return out
}

func lef32(vals ...float32) []byte {
	out := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}

	return out
}

func lef64(vals ...float64) []byte {
	out := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
	}

	return out
}

// pcm16File is a minimal mono 16-bit PCM file at 22050 Hz.
func pcm16File(samples ...int16) []byte {
	return buildWAV(fmtChunkOf(1, 1, 22050, 16), dataChunkOf(le16(samples...)))
}
