package interp

var (
	// CIDFact is the chunk ID for the fact chunk.
	CIDFact = [4]byte{'f', 'a', 'c', 't'}
	// CIDPeak is the chunk ID for the PEAK chunk.
	CIDPeak = [4]byte{'P', 'E', 'A', 'K'}
)

// RawChunk stores a chunk that is copied to the output without being
// reinterpreted.
type RawChunk struct {
	ID [4]byte
	// Size mirrors len(Data).
	Size uint32
	Data []byte
}

// encodedLen is the number of bytes the chunk takes once written, including
// its header and pad byte.
func (c *RawChunk) encodedLen() int {
	n := chunkHeaderSize + len(c.Data)
	if len(c.Data)%2 == 1 {
		n++
	}

	return n
}
