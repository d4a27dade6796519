package srcz

import "github.com/go-faster/errors"

//go:generate go run github.com/dmarkham/enumer -transform snake_upper -type Algorithm -output algorithm_enum.go

// Algorithm is the compression codec recorded in the container header.
type Algorithm byte

const (
	Deflate Algorithm = 0
	Zstd    Algorithm = 1
)

// Level is the codec compression level recorded in the container header.
//
// Zero selects the backend default (BestSpeed for deflate, 3 for zstd); it
// does not mean "store uncompressed". Decoders ignore the level, it is
// informational only.
type Level byte

// Valid levels per algorithm, zero excluded.
const (
	minDeflateLevel Level = 1
	maxDeflateLevel Level = 9
	minZstdLevel    Level = 1
	maxZstdLevel    Level = 22
)

// Validate reports whether l is usable with a.
func (l Level) Validate(a Algorithm) error {
	if l == 0 {
		return nil
	}
	switch a {
	case Deflate:
		if l < minDeflateLevel || l > maxDeflateLevel {
			return errors.Errorf("deflate level %d not in [%d, %d]", l, minDeflateLevel, maxDeflateLevel)
		}
	case Zstd:
		if l < minZstdLevel || l > maxZstdLevel {
			return errors.Errorf("zstd level %d not in [%d, %d]", l, minZstdLevel, maxZstdLevel)
		}
	default:
		return errors.Errorf("unknown algorithm 0x%02x", byte(a))
	}
	return nil
}
