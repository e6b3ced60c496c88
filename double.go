package interp

import (
	"bytes"
	"io"
)

// WriteDoubled interpolates the file's samples and writes the complete
// doubled WAV file to w.
func (f *File) WriteDoubled(w io.Writer, opts HeaderOptions) error {
	samples, err := Interpolate(f.Descriptor, f.Data)
	if err != nil {
		return err
	}

	enc := NewEncoder(w, opts)

	err = enc.WriteHeader(f.Descriptor, f.Peak)
	if err != nil {
		return err
	}

	return enc.WriteData(samples)
}

// Double parses an in-memory WAV file and returns its doubled-rate version.
func Double(input []byte, opts HeaderOptions) ([]byte, error) {
	f, err := Parse(input)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(input) + len(f.Data))

	err = f.WriteDoubled(&buf, opts)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
