package interp

import (
	"fmt"

	"github.com/go-audio/riff"
)

const (
	chunkHeaderSize = 8
	fmtChunkSize    = 16
	factChunkSize   = 4
)

// decodeFmtChunk reads the PCM part of a fmt chunk. Extension bytes (cbSize
// and what follows) are left to the chunk walker to skip.
func decodeFmtChunk(chunk *riff.Chunk) (Descriptor, error) {
	var d Descriptor

	if chunk == nil {
		return d, errNilChunk
	}

	if chunk.Size < fmtChunkSize {
		return d, fmt.Errorf("fmt chunk of %d bytes: %w", chunk.Size, ErrTruncatedInput)
	}

	var formatTag uint16

	err := chunk.ReadLE(&formatTag)
	if err != nil {
		return d, fmt.Errorf("failed to read wav format: %w", err)
	}

	d.AudioFormat = AudioFormat(formatTag)

	err = chunk.ReadLE(&d.NumChannels)
	if err != nil {
		return d, fmt.Errorf("failed to read channels: %w", err)
	}

	err = chunk.ReadLE(&d.SampleRate)
	if err != nil {
		return d, fmt.Errorf("failed to read sample rate: %w", err)
	}

	err = chunk.ReadLE(&d.ByteRate)
	if err != nil {
		return d, fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	err = chunk.ReadLE(&d.BlockAlign)
	if err != nil {
		return d, fmt.Errorf("failed to read block align: %w", err)
	}

	err = chunk.ReadLE(&d.BitsPerSample)
	if err != nil {
		return d, fmt.Errorf("failed to read bit depth: %w", err)
	}

	return d, nil
}

func decodeFactChunk(chunk *riff.Chunk) (uint32, error) {
	if chunk == nil {
		return 0, errNilChunk
	}

	if chunk.Size < factChunkSize {
		return 0, fmt.Errorf("fact chunk of %d bytes: %w", chunk.Size, ErrTruncatedInput)
	}

	var sampleLength uint32

	err := chunk.ReadLE(&sampleLength)
	if err != nil {
		return 0, fmt.Errorf("failed to read fact sample length: %w", err)
	}

	return sampleLength, nil
}
