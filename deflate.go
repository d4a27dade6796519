package srcz

import (
	"github.com/go-faster/errors"
	"github.com/klauspost/compress/flate"
)

// deflateBackend compresses with raw deflate framing. Raw framing (no zlib
// header or trailer) is required for chunked decompression: a segment that
// starts at a chunk border must be readable by a fresh inflater.
type deflateBackend struct {
	w   *flate.Writer
	out *sink
}

func newDeflateBackend(out *sink, level Level) (*deflateBackend, error) {
	lvl := flate.BestSpeed
	if level != 0 {
		lvl = int(level)
	}
	w, err := flate.NewWriter(out, lvl)
	if err != nil {
		return nil, errors.Wrap(err, "deflate writer")
	}
	return &deflateBackend{w: w, out: out}, nil
}

func (b *deflateBackend) feed(p []byte) error {
	if _, err := b.w.Write(p); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

// flush emits a full-flush boundary: a sync flush drains the chunk's
// compressed bytes and byte-aligns the stream, and the reset drops the
// match history so the next chunk has no back-references into this one.
// No end-of-stream marker is written.
func (b *deflateBackend) flush(p []byte) error {
	if err := b.feed(p); err != nil {
		return err
	}
	if err := b.w.Flush(); err != nil {
		return errors.Wrap(err, "flush")
	}
	b.w.Reset(b.out)
	return nil
}

func (b *deflateBackend) finish(p []byte) error {
	if err := b.feed(p); err != nil {
		return err
	}
	if err := b.w.Close(); err != nil {
		return errors.Wrap(err, "close")
	}
	return nil
}

func (b *deflateBackend) close() error {
	b.w = nil
	return nil
}
