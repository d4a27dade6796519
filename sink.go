package srcz

// sink routes codec output into the caller-bound span of the output buffer.
//
// The codecs emit through io.Writer and cannot suspend mid-write, so bytes
// that do not fit the bound span are kept in spill until SetOutput binds a
// larger buffer. While spill is non-empty the driver reports
// StatusMoreOutput and feeds no further input, preserving the invariant
// that the emitted byte sequence does not depend on output buffer sizes.
type sink struct {
	span  []byte // unwritten remainder of the caller buffer
	spill []byte // overflow, drained on the next bind
	total int    // payload bytes emitted by the codec so far
	bound bool
}

// Write implements io.Writer. It never fails; overflow goes to spill.
func (s *sink) Write(p []byte) (int, error) {
	s.total += len(p)
	rest := p
	if len(s.spill) == 0 {
		n := copy(s.span, rest)
		s.span = s.span[n:]
		rest = rest[n:]
	}
	s.spill = append(s.spill, rest...)
	return len(p), nil
}

// placed returns the number of payload bytes already in the caller buffer.
func (s *sink) placed() int { return s.total - len(s.spill) }

// full reports that emitted bytes are waiting for a larger buffer.
func (s *sink) full() bool { return len(s.spill) > 0 }

// bind replaces the writable span and drains pending spill into it.
func (s *sink) bind(span []byte) {
	s.span = span
	s.bound = true
	if len(s.spill) == 0 {
		return
	}
	n := copy(s.span, s.spill)
	s.span = s.span[n:]
	s.spill = s.spill[:copy(s.spill, s.spill[n:])]
}
