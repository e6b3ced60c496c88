package interp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"github.com/sirupsen/logrus"
)

var errNilChunk = errors.New("nil chunk pointer")

// File is one parsed WAV file. It carries everything needed to write the
// doubled version and nothing outlives it.
type File struct {
	Descriptor

	// Peak is the PEAK chunk of an IEEE float file, nil when absent.
	Peak *RawChunk
	// Data is the data chunk payload. It aliases the parsed input.
	Data []byte
	// DataOffset is the position of Data in the parsed input.
	DataOffset int64
}

// Parse reads the container structure of an in-memory WAV file.
//
// Chunks are walked by their declared sizes. The expected layout is fmt,
// an optional fact chunk (mandatory for IEEE float), an optional PEAK chunk
// (IEEE float only) and data. Unknown chunks are skipped and not kept.
func Parse(data []byte) (*File, error) {
	r := bytes.NewReader(data)
	parser := riff.New(r)

	id, size, err := parser.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", ErrTruncatedInput)
	}

	if id != riff.RiffID {
		return nil, fmt.Errorf("%q - %w", id, ErrUnsupportedContainer)
	}

	parser.ID = id
	parser.Size = size

	err = binary.Read(r, binary.BigEndian, &parser.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to read RIFF form type: %w", ErrTruncatedInput)
	}

	if parser.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%q form - %w", parser.Format, ErrUnsupportedContainer)
	}

	w := &chunkWalker{data: data, r: r, parser: parser}

	return w.walk()
}

type chunkWalker struct {
	data   []byte
	r      *bytes.Reader
	parser *riff.Parser
}

func (w *chunkWalker) offset() int64 {
	return w.r.Size() - int64(w.r.Len())
}

// next reads the next chunk header. The returned chunk reader is bounded to
// the declared size, which has to fit in the remaining input.
func (w *chunkWalker) next() (*riff.Chunk, int64, error) {
	id, size, err := w.parser.IDnSize()
	if errors.Is(err, io.EOF) {
		return nil, 0, io.EOF
	}

	if err != nil {
		return nil, 0, fmt.Errorf("error reading chunk header - %w", ErrTruncatedInput)
	}

	start := w.offset()
	if int64(size) > int64(w.r.Len()) {
		return nil, 0, fmt.Errorf("%q chunk declares %d bytes, %d left: %w", id, size, w.r.Len(), ErrTruncatedInput)
	}

	return &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    io.LimitReader(w.r, int64(size)),
	}, start, nil
}

// skip positions the reader after the chunk payload and its pad byte.
func (w *chunkWalker) skip(chunk *riff.Chunk, start int64) error {
	end := start + int64(chunk.Size)
	// all RIFF chunks must be word aligned, odd sizes are followed by a pad byte.
	if chunk.Size%2 == 1 && end < w.r.Size() {
		end++
	}

	_, err := w.r.Seek(end, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to skip %q chunk: %w", chunk.ID, err)
	}

	return nil
}

func (w *chunkWalker) walk() (*File, error) {
	file := &File{}

	var sawFmt, sawFact, sawPeak bool

	for {
		chunk, start, err := w.next()
		if errors.Is(err, io.EOF) {
			if !sawFmt {
				return nil, fmt.Errorf("fmt chunk not found: %w", ErrTruncatedInput)
			}

			return nil, fmt.Errorf("data chunk not found: %w", ErrTruncatedInput)
		}

		if err != nil {
			return nil, err
		}

		switch chunk.ID {
		case riff.FmtID:
			if sawFmt {
				return nil, fmt.Errorf("%w: second fmt chunk", ErrChunkOrder)
			}

			desc, err := decodeFmtChunk(chunk)
			if err != nil {
				return nil, err
			}

			err = desc.Validate()
			if err != nil {
				return nil, err
			}

			file.Descriptor = desc
			sawFmt = true
		case CIDFact:
			if !sawFmt || sawFact || sawPeak {
				return nil, fmt.Errorf("%w: fact chunk at offset %d", ErrChunkOrder, start-chunkHeaderSize)
			}

			sampleLength, err := decodeFactChunk(chunk)
			if err != nil {
				return nil, err
			}

			file.SampleLength = sampleLength
			file.HasFact = true
			sawFact = true
		case CIDPeak:
			if !sawFmt || sawPeak {
				return nil, fmt.Errorf("%w: PEAK chunk at offset %d", ErrChunkOrder, start-chunkHeaderSize)
			}

			sawPeak = true

			if file.AudioFormat != FormatIEEEFloat {
				logrus.Debugf("skipping PEAK chunk of %s file", file.AudioFormat)

				break
			}

			peak, err := decodePeakChunk(chunk, int(file.NumChannels))
			if err != nil {
				return nil, err
			}

			file.Peak = peak
		case riff.DataFormatID:
			if !sawFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrChunkOrder)
			}

			if file.AudioFormat == FormatIEEEFloat && !file.HasFact {
				return nil, fmt.Errorf("%w: required for %s", ErrMissingFact, file.AudioFormat)
			}

			return w.readData(file, chunk, start)
		default:
			logrus.Debugf("skipping %q chunk (%d bytes)", chunk.ID, chunk.Size)
		}

		err = w.skip(chunk, start)
		if err != nil {
			return nil, err
		}
	}
}

func (w *chunkWalker) readData(file *File, chunk *riff.Chunk, start int64) (*File, error) {
	frameSize := file.FrameSize()
	if chunk.Size%frameSize != 0 {
		return nil, fmt.Errorf("%d data bytes for %d-byte frames: %w", chunk.Size, frameSize, ErrPartialFrame)
	}

	file.DataSize = uint32(chunk.Size)
	file.DataOffset = start
	file.Data = w.data[start : start+int64(chunk.Size)]

	return file, nil
}
