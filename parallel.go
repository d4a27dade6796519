package srcz

import (
	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"
)

// DecompressChunks reassembles the whole blob of uncompressed length n from
// independent per-chunk decodes running on up to parallelism goroutines.
// Chunk decoders share only the immutable container, so this is equivalent
// to Decompress for a well-formed container.
func DecompressChunks(container []byte, n, parallelism int) ([]byte, error) {
	if parallelism < 1 {
		return nil, errors.Errorf("parallelism %d < 1", parallelism)
	}
	if n <= 0 {
		return nil, errors.Errorf("uncompressed length %d < 1", n)
	}
	chunks, err := Chunks(container)
	if err != nil {
		return nil, errors.Wrap(err, "chunks")
	}
	if chunks != NumChunks(n) {
		return nil, errors.Errorf("container has %d chunks, length %d needs %d", chunks, n, NumChunks(n))
	}

	out := make([]byte, n)
	var g errgroup.Group
	g.SetLimit(parallelism)
	for i := 0; i < chunks; i++ {
		i := i
		g.Go(func() error {
			dst := out[i*ChunkSize : i*ChunkSize+ChunkLen(n, i)]
			if err := decompressChunkInto(container, i, dst); err != nil {
				return errors.Wrapf(err, "chunk %d", i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
