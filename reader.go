package htmlstrip

import (
	"errors"
	"io"
)

// Reader compacts an HTML document read from an underlying [io.Reader].
type Reader struct {
	r      io.Reader
	rb     readBuffer
	stream Stream
	err    error
}

type ReaderOption func(r *Reader)

func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	cr := &Reader{r: r}

	for _, opt := range opts {
		opt(cr)
	}

	return cr
}

// WithBufferSize sets how many bytes are read from the underlying reader at once.
func WithBufferSize(size int) ReaderOption {
	return func(r *Reader) {
		if size > 0 {
			r.rb = readBuffer{buf: make([]byte, size)}
		}
	}
}

// Read implements [io.Reader]. It does not return 0, nil while the
// underlying reader still has data, even if that data compacts to nothing.
func (cr *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for cr.rb.start == cr.rb.end {
		if cr.err != nil {
			return 0, cr.err
		}
		cr.err = cr.rb.fill(cr.r, &cr.stream)
	}

	n := copy(p, cr.rb.window())
	cr.rb.advance(n)

	return n, nil
}

// WriteTo implements [io.WriterTo] so [io.Copy] skips the intermediate buffer.
func (cr *Reader) WriteTo(w io.Writer) (written int64, err error) {
	for {
		if win := cr.rb.window(); len(win) > 0 {
			n, err := w.Write(win)
			written += int64(n)
			cr.rb.advance(n)
			if err != nil {
				return written, err
			}
			if n < len(win) {
				return written, io.ErrShortWrite
			}
		}

		if cr.err != nil {
			if errors.Is(cr.err, io.EOF) {
				return written, nil
			}
			return written, cr.err
		}
		cr.err = cr.rb.fill(cr.r, &cr.stream)
	}
}

// Aborted reports whether compaction was disengaged by unclassifiable markup.
func (cr *Reader) Aborted() bool {
	return cr.stream.Aborted()
}
