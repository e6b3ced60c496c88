package interp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
	"github.com/sirupsen/logrus"
)

const (
	peakHeaderSize   = 8
	peakPositionSize = 8
)

// PeakPosition is the per-channel record of a PEAK chunk.
type PeakPosition struct {
	Value    float32
	Position uint32
}

// PeakChunk is the decoded view of a PEAK chunk.
type PeakChunk struct {
	Version   uint32
	Timestamp uint32
	Peaks     []PeakPosition
}

func peakPayloadSize(numChannels int) int {
	return peakHeaderSize + peakPositionSize*numChannels
}

// decodePeakChunk keeps the version, timestamp and one position record per
// channel. The layout size comes from the channel count; whatever the chunk
// declares beyond it is left for the walker to skip.
func decodePeakChunk(chunk *riff.Chunk, numChannels int) (*RawChunk, error) {
	if chunk == nil {
		return nil, errNilChunk
	}

	size := peakPayloadSize(numChannels)
	if chunk.Size < size {
		return nil, fmt.Errorf("PEAK chunk of %d bytes for %d channel(s): %w", chunk.Size, numChannels, ErrTruncatedInput)
	}

	if chunk.Size > size {
		logrus.Debugf("PEAK chunk declares %d bytes, keeping %d", chunk.Size, size)
	}

	data := make([]byte, size)

	_, err := io.ReadFull(chunk, data)
	if err != nil {
		return nil, fmt.Errorf("failed to read PEAK chunk: %w", err)
	}

	return &RawChunk{ID: CIDPeak, Size: uint32(size), Data: data}, nil
}

// PeakPositions decodes the preserved PEAK chunk. It returns nil when the
// file has none.
func (f *File) PeakPositions() (*PeakChunk, error) {
	if f == nil || f.Peak == nil {
		return nil, nil
	}

	data := f.Peak.Data
	if len(data) < peakHeaderSize || (len(data)-peakHeaderSize)%peakPositionSize != 0 {
		return nil, fmt.Errorf("PEAK chunk of %d bytes: %w", len(data), ErrTruncatedInput)
	}

	peak := &PeakChunk{
		Version:   binary.LittleEndian.Uint32(data[0:4]),
		Timestamp: binary.LittleEndian.Uint32(data[4:8]),
	}

	for off := peakHeaderSize; off < len(data); off += peakPositionSize {
		peak.Peaks = append(peak.Peaks, PeakPosition{
			Value:    math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4])),
			Position: binary.LittleEndian.Uint32(data[off+4 : off+8]),
		})
	}

	return peak, nil
}
