package interp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
)

var errNilWriter = errors.New("can't write to a nil writer")

// HeaderOptions tunes the header of the doubled file.
type HeaderOptions struct {
	// LegacyBlockAlign writes a block align of 2 bytes per channel whatever
	// the bit depth, as older releases of the tool did.
	LegacyBlockAlign bool
}

// Encoder writes the doubled WAV file to w.
type Encoder struct {
	w io.Writer

	Options HeaderOptions

	WrittenBytes int
	wroteHeader  bool
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer, opts HeaderOptions) *Encoder {
	return &Encoder{w: w, Options: opts}
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// AddBE serializes and adds the passed value using big endian.
func (e *Encoder) AddBE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

// WriteHeader writes everything up to the data chunk payload for the doubled
// version of desc. The PEAK chunk, if any, is written unmodified.
func (e *Encoder) WriteHeader(desc Descriptor, peak *RawChunk) error {
	if e == nil || e.w == nil {
		return errNilWriter
	}

	if e.wroteHeader {
		return errAlreadyWroteHeader
	}

	e.wroteHeader = true

	out, err := desc.Doubled(e.Options)
	if err != nil {
		return err
	}

	// The RIFF size counts fact and PEAK too, not just 36 + data.
	riffSize, err := riffChunkSize(out, peak)
	if err != nil {
		return err
	}

	err = e.AddBE(riff.RiffID)
	if err != nil {
		return err
	}

	err = e.AddLE(riffSize)
	if err != nil {
		return fmt.Errorf("error encoding the RIFF size - %w", err)
	}

	err = e.AddBE(riff.WavFormatID)
	if err != nil {
		return err
	}

	err = e.writeFmtChunk(out)
	if err != nil {
		return err
	}

	if out.HasFact {
		err = e.writeRawChunk(RawChunk{ID: CIDFact, Size: factChunkSize, Data: binary.LittleEndian.AppendUint32(nil, out.SampleLength)})
		if err != nil {
			return err
		}
	}

	if peak != nil {
		err = e.writeRawChunk(*peak)
		if err != nil {
			return err
		}
	}

	err = e.AddBE(riff.DataFormatID)
	if err != nil {
		return fmt.Errorf("error encoding sound header %w", err)
	}

	err = e.AddLE(out.DataSize)
	if err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	return nil
}

// WriteData writes the doubled sample bytes after the header.
func (e *Encoder) WriteData(samples []byte) error {
	if e == nil || e.w == nil {
		return errNilWriter
	}

	if !e.wroteHeader {
		return errHeaderNotWritten
	}

	n, err := e.w.Write(samples)
	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}

	return nil
}

var (
	errAlreadyWroteHeader = errors.New("already wrote header")
	errHeaderNotWritten   = errors.New("header must be written before samples")
)

// SerializeHeader returns the header bytes of the doubled version of desc.
func SerializeHeader(desc Descriptor, peak *RawChunk, opts HeaderOptions) ([]byte, error) {
	var buf bytes.Buffer

	err := NewEncoder(&buf, opts).WriteHeader(desc, peak)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *Encoder) writeFmtChunk(out Descriptor) error {
	err := e.AddBE(riff.FmtID)
	if err != nil {
		return err
	}

	err = e.AddLE(uint32(fmtChunkSize))
	if err != nil {
		return err
	}

	err = e.AddLE(uint16(out.AudioFormat))
	if err != nil {
		return err
	}

	err = e.AddLE(out.NumChannels)
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddLE(out.SampleRate)
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	err = e.AddLE(out.ByteRate)
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	err = e.AddLE(out.BlockAlign)
	if err != nil {
		return err
	}

	err = e.AddLE(out.BitsPerSample)
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	return nil
}

func (e *Encoder) writeRawChunk(chunk RawChunk) error {
	size := uint32(len(chunk.Data))

	err := e.AddBE(chunk.ID)
	if err != nil {
		return fmt.Errorf("failed to write raw chunk id %q: %w", chunk.ID, err)
	}

	err = e.AddLE(size)
	if err != nil {
		return fmt.Errorf("failed to write raw chunk size %q: %w", chunk.ID, err)
	}

	if len(chunk.Data) > 0 {
		n, err := e.w.Write(chunk.Data)
		e.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write raw chunk payload %q: %w", chunk.ID, err)
		}
	}

	if size%2 == 1 {
		n, err := e.w.Write([]byte{0})
		e.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write raw chunk padding %q: %w", chunk.ID, err)
		}
	}

	return nil
}

// riffChunkSize counts the form type and every chunk that WriteHeader and
// WriteData emit.
func riffChunkSize(out Descriptor, peak *RawChunk) (uint32, error) {
	size := uint64(4 + chunkHeaderSize + fmtChunkSize)

	if out.HasFact {
		size += chunkHeaderSize + factChunkSize
	}

	if peak != nil {
		size += uint64(peak.encodedLen())
	}

	size += chunkHeaderSize + uint64(out.DataSize)

	if size > math.MaxUint32 {
		return 0, fmt.Errorf("%w: RIFF size %d", ErrOutputTooLarge, size)
	}

	return uint32(size), nil
}
