package htmlstrip

import (
	"io"
)

const (
	defaultReadBufSize = 32 * 1024
	maxEmptyReads      = 100
)

// readBuffer holds compacted bytes that have not been handed to the caller yet.
type readBuffer struct {
	buf        []byte
	start, end int
}

func (rb *readBuffer) init() {
	if len(rb.buf) == 0 {
		rb.buf = make([]byte, defaultReadBufSize)
	}
}

func (rb *readBuffer) window() []byte {
	return rb.buf[rb.start:rb.end]
}

func (rb *readBuffer) advance(consumed int) {
	if consumed <= 0 {
		return
	}
	rb.start += consumed
	if rb.start >= rb.end {
		rb.start, rb.end = 0, 0
	}
}

// fill reads the next chunk of r into the drained buffer and compacts it
// through s. The window may still be empty on return if the whole chunk was
// whitespace.
func (rb *readBuffer) fill(r io.Reader, s *Stream) error {
	rb.init()
	rb.start, rb.end = 0, 0

	for i := 0; i < maxEmptyReads; i++ {
		n, err := r.Read(rb.buf)
		if n > 0 {
			rb.end = len(s.Compact(rb.buf[:n]))
			return err
		}
		if err != nil {
			return err
		}
	}

	return io.ErrNoProgress
}
