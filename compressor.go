package srcz

import (
	"github.com/go-faster/errors"
)

//go:generate go run github.com/dmarkham/enumer -type Status -trimprefix Status -output status_enum.go

// Status is the result of a single CompressMore step.
type Status int

const (
	// StatusContinue means progress was made; call CompressMore again.
	StatusContinue Status = iota
	// StatusMoreOutput means the output buffer is exhausted. Grow it,
	// preserving the bytes written so far, re-bind with SetOutput and
	// call CompressMore again. No input position is lost.
	StatusMoreOutput
	// StatusDone means all input is compressed and the offset table is
	// complete; Finish may be called.
	StatusDone
)

// backend is the codec behind the driver. Directives mirror the step
// classification: plain feed, feed plus full flush at a chunk border,
// feed plus end of stream. Emitted bytes go to the driver's sink.
type backend interface {
	feed(p []byte) error
	flush(p []byte) error
	finish(p []byte) error
	close() error
}

// Compressor incrementally compresses a byte blob into a chunked
// random-access container.
//
// Usage: NewCompressor, SetOutput, then CompressMore until StatusDone,
// growing the output on StatusMoreOutput; then TotalBytes and Finish.
// Close releases codec state and must be called on all paths, including
// abandonment before StatusDone.
type Compressor struct {
	data      []byte
	algorithm Algorithm
	level     Level

	cursor int
	done   bool

	out  sink
	acct accountant
	be   backend
}

// NewCompressor creates a compressor over data. The input is borrowed, not
// copied; it must stay immutable until StatusDone.
func NewCompressor(data []byte, algorithm Algorithm, level Level) (*Compressor, error) {
	if len(data) == 0 {
		return nil, errors.New("empty input")
	}
	if uint64(len(data)) >= maxInputLen {
		return nil, errors.Errorf("input size %d exceeds %d", len(data), uint64(maxInputLen))
	}
	if err := level.Validate(algorithm); err != nil {
		return nil, errors.Wrap(err, "level")
	}

	c := &Compressor{
		data:      data,
		algorithm: algorithm,
		level:     level,
	}

	var err error
	switch algorithm {
	case Deflate:
		c.be, err = newDeflateBackend(&c.out, level)
	case Zstd:
		c.be, err = newZstdBackend(&c.out, level)
	default:
		return nil, errors.Errorf("unknown algorithm 0x%02x", byte(algorithm))
	}
	if err != nil {
		return nil, errors.Wrap(err, "backend")
	}

	return c, nil
}

// SetOutput binds the caller-owned output buffer. The buffer must be larger
// than the bytes already produced (at least HeaderSize+1 initially), and a
// re-bound buffer must preserve those bytes: the compressor resumes writing
// where it left off.
func (c *Compressor) SetOutput(buf []byte) error {
	placed := HeaderSize + c.out.placed()
	if len(buf) <= placed {
		return errors.Errorf("output size %d <= %d", len(buf), placed)
	}
	c.out.bind(buf[placed:])
	return nil
}

// CompressMore advances compression by one step.
func (c *Compressor) CompressMore() (Status, error) {
	if !c.out.bound {
		return 0, errors.New("output not set")
	}
	if c.out.full() {
		// Still waiting for a larger buffer.
		return StatusMoreOutput, nil
	}
	if c.done {
		return StatusDone, nil
	}

	remaining := len(c.data) - c.cursor
	step := remaining
	if step > maxStepInput {
		step = maxStepInput
	}

	// Finish the current chunk if this step reaches its border.
	flush := false
	if c.acct.fill+step >= ChunkSize {
		step = ChunkSize - c.acct.fill
		flush = true
	}
	done := step == remaining

	in := c.data[c.cursor : c.cursor+step]
	var err error
	switch {
	case done:
		err = c.be.finish(in)
	case flush:
		err = c.be.flush(in)
	default:
		err = c.be.feed(in)
	}
	if err != nil {
		return 0, errors.Wrap(err, "step")
	}
	c.cursor += step
	c.acct.advance(step)

	if done || flush {
		// The full flush (or stream end) forced every compressed byte of
		// the chunk out of the codec, so the segment ends here.
		c.acct.complete(HeaderSize + c.out.total)
	}
	if done {
		c.done = true
	}
	if c.out.full() {
		return StatusMoreOutput, nil
	}
	if done {
		return StatusDone, nil
	}
	return StatusContinue, nil
}

// TotalBytes returns the exact container size. Valid only after StatusDone.
func (c *Compressor) TotalBytes() int {
	return align4(HeaderSize+c.out.total) + c.acct.tableBytes()
}

// Finish stamps the header, zeroes the alignment padding and appends the
// chunk offset table. dest must be the output buffer holding the payload
// produced so far, truncated or grown to exactly TotalBytes.
func (c *Compressor) Finish(dest []byte) error {
	if !c.done || c.out.full() {
		return errors.New("compression not done")
	}
	if len(dest) != c.TotalBytes() {
		return errors.Errorf("dest size %d != %d", len(dest), c.TotalBytes())
	}

	header{
		CompressedBytes: uint32(c.out.total),
		Algorithm:       c.algorithm,
		Level:           c.level,
	}.put(dest)

	// Zero the padding: downstream caches hash the whole container.
	end := HeaderSize + c.out.total
	for i := end; i < align4(end); i++ {
		dest[i] = 0
	}

	table := dest[align4(end):]
	for i, off := range c.acct.offsets {
		bin.PutUint32(table[4*i:], off)
	}
	return nil
}

// Close releases the codec stream state. Safe to call before StatusDone.
func (c *Compressor) Close() error {
	if c.be == nil {
		return nil
	}
	err := c.be.close()
	c.be = nil
	return err
}
