package srcz

import (
	"bytes"
	"io"

	"github.com/go-faster/errors"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

// Decompress decodes the whole blob from a container produced by Compress.
// The caller supplies the uncompressed length n; the container does not
// record it. The algorithm is auto-detected from the header.
func Decompress(container []byte, n int) ([]byte, error) {
	h, err := parseHeader(container)
	if err != nil {
		return nil, errors.Wrap(err, "header")
	}
	payload := container[HeaderSize:h.payloadEnd()]
	out := make([]byte, n)

	switch h.Algorithm {
	case Deflate:
		if err := inflate(payload, out, true); err != nil {
			return nil, errors.Wrap(err, "inflate")
		}
	case Zstd:
		if err := unzstd(payload, out); err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
	default:
		return nil, errors.Errorf("unknown algorithm 0x%02x", byte(h.Algorithm))
	}
	return out, nil
}

// DecompressChunk decodes a single chunk from a container. outLen must be
// the uncompressed size of that chunk, see ChunkLen. Chunk decodes share no
// state: concurrent calls on one container are safe.
func DecompressChunk(container []byte, chunk, outLen int) ([]byte, error) {
	out := make([]byte, outLen)
	if err := decompressChunkInto(container, chunk, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Chunks returns the number of chunks recorded in the container.
func Chunks(container []byte) (int, error) {
	h, err := parseHeader(container)
	if err != nil {
		return 0, errors.Wrap(err, "header")
	}
	table := len(container) - h.tableStart()
	if table <= 0 || table%4 != 0 {
		return 0, errors.Errorf("offset table size %d", table)
	}
	return table / 4, nil
}

func decompressChunkInto(container []byte, chunk int, out []byte) error {
	if len(out) == 0 || len(out) > ChunkSize {
		return errors.Errorf("chunk output size %d not in [1, %d]", len(out), ChunkSize)
	}
	h, err := parseHeader(container)
	if err != nil {
		return errors.Wrap(err, "header")
	}
	chunks, err := Chunks(container)
	if err != nil {
		return err
	}
	if chunk < 0 || chunk >= chunks {
		return errors.Errorf("chunk %d out of range [0, %d)", chunk, chunks)
	}

	table := container[h.tableStart():]
	start := HeaderSize
	if chunk > 0 {
		start = int(bin.Uint32(table[4*(chunk-1):]))
	}
	end := int(bin.Uint32(table[4*chunk:]))
	if start >= end || end > h.payloadEnd() {
		return errors.Errorf("segment [%d, %d) out of range [%d, %d]", start, end, HeaderSize, h.payloadEnd())
	}
	segment := container[start:end]
	last := end == h.payloadEnd()

	switch h.Algorithm {
	case Deflate:
		if err := inflate(segment, out, last); err != nil {
			return errors.Wrap(err, "inflate")
		}
	case Zstd:
		if err := unzstd(segment, out); err != nil {
			return errors.Wrap(err, "zstd")
		}
	default:
		return errors.Errorf("unknown algorithm 0x%02x", byte(h.Algorithm))
	}
	return nil
}

// inflate decodes raw deflate data into exactly len(out) bytes. Segments of
// non-terminal chunks carry no end-of-stream marker, so final is false for
// them and the end of stream is not demanded.
func inflate(data []byte, out []byte, final bool) error {
	fr := flate.NewReader(bytes.NewReader(data))
	defer func() { _ = fr.Close() }()

	if _, err := io.ReadFull(fr, out); err != nil {
		return errors.Wrap(err, "read")
	}
	var extra [1]byte
	n, err := fr.Read(extra[:])
	if n != 0 {
		return errors.New("trailing uncompressed data")
	}
	if final && err != io.EOF {
		return errors.Wrap(err, "stream end")
	}
	return nil
}

// unzstd one-shot decodes zstd frames into exactly len(out) bytes.
func unzstd(data []byte, out []byte) error {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return errors.Wrap(err, "reader")
	}
	defer dec.Close()

	got, err := dec.DecodeAll(data, out[:0])
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	if len(got) != len(out) {
		return errors.Errorf("decoded size %d != %d", len(got), len(out))
	}
	// DecodeAll appends to out[:0] and fits in place; copy covers the
	// degenerate case of a reallocation.
	if len(got) != 0 && &got[0] != &out[0] {
		copy(out, got)
	}
	return nil
}
