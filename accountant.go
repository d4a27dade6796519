package srcz

// accountant tracks the fill of the chunk being compressed and the
// container offsets of completed chunk segments.
type accountant struct {
	fill    int // uncompressed bytes consumed in the current chunk, 0..ChunkSize
	offsets []uint32
}

// advance records n more uncompressed bytes in the current chunk.
func (a *accountant) advance(n int) {
	a.fill += n
	if a.fill > ChunkSize {
		panic("srcz: chunk overfilled")
	}
}

// complete closes the current chunk at the given container offset.
// Exactly one offset is recorded per chunk; the last one equals
// HeaderSize plus the payload length.
func (a *accountant) complete(offset int) {
	a.offsets = append(a.offsets, uint32(offset))
	a.fill = 0
}

func (a *accountant) tableBytes() int { return 4 * len(a.offsets) }
