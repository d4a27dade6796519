package srcz

import (
	"github.com/go-faster/errors"
	"github.com/klauspost/compress/zstd"
)

// zstdBackend compresses with zstd. A chunk border ends the current frame
// and opens the next one, so every chunk segment is a complete frame and
// one-shot decodable, while the payload as a whole stays a standard
// concatenated-frame stream.
type zstdBackend struct {
	enc    *zstd.Encoder
	out    *sink
	closed bool
}

func newZstdBackend(out *sink, level Level) (*zstdBackend, error) {
	lvl := 3
	if level != 0 {
		lvl = int(level)
	}
	enc, err := zstd.NewWriter(out,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)),
		zstd.WithEncoderConcurrency(1),
		zstd.WithWindowSize(ChunkSize),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "zstd writer")
	}
	return &zstdBackend{enc: enc, out: out}, nil
}

func (b *zstdBackend) feed(p []byte) error {
	if _, err := b.enc.Write(p); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

func (b *zstdBackend) flush(p []byte) error {
	if err := b.feed(p); err != nil {
		return err
	}
	if err := b.enc.Close(); err != nil {
		return errors.Wrap(err, "end frame")
	}
	b.enc.Reset(b.out)
	return nil
}

func (b *zstdBackend) finish(p []byte) error {
	if err := b.feed(p); err != nil {
		return err
	}
	if err := b.enc.Close(); err != nil {
		return errors.Wrap(err, "end frame")
	}
	b.closed = true
	return nil
}

func (b *zstdBackend) close() error {
	if b.enc == nil {
		return nil
	}
	enc := b.enc
	b.enc = nil
	if b.closed {
		return nil
	}
	// Abandoned before stream end: Close finalizes the pending frame into
	// the now-inert sink and releases encoder state.
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "close")
	}
	return nil
}
