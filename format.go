package srcz

import (
	"encoding/binary"

	"github.com/go-faster/errors"
)

const (
	// HeaderSize is the size of the fixed container header.
	HeaderSize = 8

	// ChunkSize is the uncompressed size of a chunk. Every chunk except
	// possibly the last covers exactly ChunkSize input bytes and is
	// independently decodable. Changing it is a breaking format change.
	ChunkSize = 64 * 1024

	// maxStepInput caps the input handed to the codec per CompressMore call.
	maxStepInput = 2 * 1024

	// maxInputLen is the exclusive upper bound on input size, limited by the
	// 32-bit compressedBytes and offset fields.
	maxInputLen = 1 << 32
)

// Header field offsets.
const (
	hCompressedBytes = 0
	hAlgorithm       = 4
	hLevel           = 5
	hReserved        = 6
)

var bin = binary.LittleEndian

// header is the fixed 8-byte container header.
//
// Layout: u32le compressedBytes (payload length, header excluded),
// u8 algorithm, u8 level, u16 reserved (zero).
type header struct {
	CompressedBytes uint32
	Algorithm       Algorithm
	Level           Level
}

func (h header) put(b []byte) {
	bin.PutUint32(b[hCompressedBytes:], h.CompressedBytes)
	b[hAlgorithm] = byte(h.Algorithm)
	b[hLevel] = byte(h.Level)
	bin.PutUint16(b[hReserved:], 0)
}

func parseHeader(b []byte) (header, error) {
	if len(b) < HeaderSize {
		return header{}, errors.Errorf("container size %d < %d", len(b), HeaderSize)
	}
	h := header{
		CompressedBytes: bin.Uint32(b[hCompressedBytes:]),
		Algorithm:       Algorithm(b[hAlgorithm]),
		Level:           Level(b[hLevel]),
	}
	if end := HeaderSize + int(h.CompressedBytes); end > len(b) {
		return header{}, errors.Errorf("payload end %d out of range %d", end, len(b))
	}
	return h, nil
}

// payloadEnd returns the container offset of the first byte past the payload.
func (h header) payloadEnd() int { return HeaderSize + int(h.CompressedBytes) }

// tableStart returns the container offset of the chunk offset table.
func (h header) tableStart() int { return align4(h.payloadEnd()) }

func align4(n int) int { return (n + 3) &^ 3 }

// NumChunks returns the number of chunks covering inputLen uncompressed bytes.
func NumChunks(inputLen int) int {
	return (inputLen-1)/ChunkSize + 1
}

// ChunkLen returns the uncompressed size of the given chunk of an input of
// inputLen bytes. All chunks are ChunkSize long except possibly the last.
func ChunkLen(inputLen, chunk int) int {
	if chunk == NumChunks(inputLen)-1 {
		if rem := inputLen % ChunkSize; rem != 0 {
			return rem
		}
	}
	return ChunkSize
}
