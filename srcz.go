// Package srcz compresses script source into chunked random-access
// containers.
//
// A container holds an arbitrary byte blob compressed with raw deflate or
// zstd, split into 64 KiB chunks that decompress independently: the payload
// is flushed at every chunk border and a trailing offset table locates each
// chunk's compressed segment. Decompressing one chunk never touches the
// bytes before it.
//
// Container layout, all integers little-endian:
//
//	header (8 bytes) | payload | zero padding to 4-byte alignment | offset table
//
// The header records the payload length, the algorithm and the level. The
// offset table holds one u32 per chunk: the container offset one past the
// end of that chunk's segment. The uncompressed length is not recorded;
// callers keep it next to the container.
package srcz

import "github.com/go-faster/errors"

// Compress compresses data into a container. Level 0 selects the backend
// default for the algorithm.
//
// It drives the step-wise Compressor with a heuristically sized buffer,
// growing it on StatusMoreOutput; incompressible input costs extra
// allocations, never failure.
func Compress(data []byte, algorithm Algorithm, level Level) ([]byte, error) {
	c, err := NewCompressor(data, algorithm, level)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}
	defer func() { _ = c.Close() }()

	buf := make([]byte, HeaderSize+len(data)+64+4*NumChunks(len(data)))
	if err := c.SetOutput(buf); err != nil {
		return nil, errors.Wrap(err, "set output")
	}
	for {
		status, err := c.CompressMore()
		if err != nil {
			return nil, errors.Wrap(err, "compress more")
		}
		if status == StatusDone {
			break
		}
		if status == StatusMoreOutput {
			grown := make([]byte, 2*len(buf))
			copy(grown, buf)
			buf = grown
			if err := c.SetOutput(buf); err != nil {
				return nil, errors.Wrap(err, "set output")
			}
		}
	}

	total := c.TotalBytes()
	if total > len(buf) {
		grown := make([]byte, total)
		copy(grown, buf)
		buf = grown
	}
	container := buf[:total]
	if err := c.Finish(container); err != nil {
		return nil, errors.Wrap(err, "finish")
	}
	return container, nil
}
