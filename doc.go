// Package interp doubles the sample rate of WAV files by linear interpolation.
//
// A file is parsed into a File (format descriptor, optional PEAK chunk and the
// raw sample bytes), the samples are run through Interpolate, and the doubled
// stream is written back with SerializeHeader or an Encoder:
//
//	f, err := interp.Parse(data)
//	if err != nil {
//		return err
//	}
//	err = f.WriteDoubled(w, interp.HeaderOptions{})
//
// Supported sample formats are 16, 24 and 32-bit PCM integer and 32 and
// 64-bit IEEE float. Every other fmt chunk is rejected with
// ErrUnsupportedFormat. Parsing never allocates sample buffers, and no state
// is shared between files, so separate files can be processed concurrently.
package interp
