package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	interp "github.com/RubisetCie/Interp"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

var errAIFFNeedsPCM = errors.New("AIFF output needs integer PCM input")

// writeAIFF stores the doubled samples in an AIFF container.
func writeAIFF(path string, desc interp.Descriptor, samples []byte) error {
	if desc.AudioFormat != interp.FormatPCM {
		return fmt.Errorf("%w, got %s", errAIFFNeedsPCM, desc.AudioFormat)
	}

	doubled, err := desc.Doubled(interp.HeaderOptions{})
	if err != nil {
		return err
	}

	buf := pcmIntBuffer(doubled, samples)

	return writeOutput(path, func(out *os.File) error {
		encoder := aiff.NewEncoder(out, int(doubled.SampleRate), int(doubled.BitsPerSample), int(doubled.NumChannels))

		err := encoder.Write(buf)
		if err != nil {
			return fmt.Errorf("failed to write AIFF samples: %w", err)
		}

		err = encoder.Close()
		if err != nil {
			return fmt.Errorf("failed to finish AIFF file: %w", err)
		}

		return nil
	})
}

func pcmIntBuffer(desc interp.Descriptor, samples []byte) *audio.IntBuffer {
	size := desc.BytesPerSample()

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(desc.NumChannels),
			SampleRate:  int(desc.SampleRate),
		},
		SourceBitDepth: int(desc.BitsPerSample),
		Data:           make([]int, 0, len(samples)/size),
	}

	for off := 0; off+size <= len(samples); off += size {
		b := samples[off : off+size]

		switch desc.BitsPerSample {
		case 16:
			buf.Data = append(buf.Data, int(int16(binary.LittleEndian.Uint16(b))))
		case 24:
			buf.Data = append(buf.Data, int(interp.Int24{b[0], b[1], b[2]}.Int32()))
		case 32:
			buf.Data = append(buf.Data, int(int32(binary.LittleEndian.Uint32(b))))
		}
	}

	return buf
}
