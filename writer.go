package htmlstrip

import (
	"errors"
	"io"
	"sync"
)

const defaultWriteBufSize = 32 * 1024

// Writer compacts everything written to it and forwards the result to an
// underlying [io.Writer]. No bytes are held back between writes.
type Writer struct {
	w      io.Writer
	stream Stream

	buf     []byte
	bufSize int

	written int64

	writeMu sync.Mutex
}

type WriterOption func(w *Writer)

// WithWriteBufferSize sets the size of the scratch buffer writes are
// compacted through. Larger writes are processed in chunks of this size.
func WithWriteBufferSize(size int) WriterOption {
	return func(w *Writer) {
		if size > 0 {
			w.bufSize = size
		}
	}
}

// NewWriter returns a new [Writer].
// Writes to the returned writer are compacted and written to w.
//
// It is the caller's responsibility to call Close on the [Writer] when done.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	cw := &Writer{bufSize: defaultWriteBufSize}

	for _, opt := range opts {
		opt(cw)
	}

	cw.Reset(w)

	return cw
}

// Reset discards the [Writer] cw's state and makes it equivalent to the
// result of its original state from [NewWriter], but writing to w instead.
// This permits reusing a [Writer] rather than allocating a new one.
func (cw *Writer) Reset(w io.Writer) {
	cw.writeMu.Lock()
	defer cw.writeMu.Unlock()

	cw.w = w
	cw.stream.Reset()
	cw.written = 0
}

var errWriterNil = errors.New("writer is nil")

// Write compacts p and writes the result to the underlying [io.Writer].
// p itself is left untouched. On success n is len(p) even though fewer
// bytes may reach the underlying writer.
func (cw *Writer) Write(p []byte) (n int, err error) {
	cw.writeMu.Lock()
	defer cw.writeMu.Unlock()

	if cw.w == nil {
		return 0, errWriterNil
	}

	if len(cw.buf) < cw.bufSize {
		cw.buf = make([]byte, cw.bufSize)
	}

	for len(p) > 0 {
		chunk := cw.buf[:copy(cw.buf, p)]
		out := cw.stream.Compact(chunk)

		if len(out) > 0 {
			m, err := cw.w.Write(out)
			cw.written += int64(m)
			if err != nil {
				return n, err
			}
		}

		n += len(chunk)
		p = p[len(chunk):]
	}

	return n, nil
}

// Written returns the number of compacted bytes passed to the underlying writer.
func (cw *Writer) Written() int64 {
	cw.writeMu.Lock()
	defer cw.writeMu.Unlock()

	return cw.written
}

// Aborted reports whether compaction was disengaged by unclassifiable markup.
func (cw *Writer) Aborted() bool {
	cw.writeMu.Lock()
	defer cw.writeMu.Unlock()

	return cw.stream.Aborted()
}

// Close detaches the [Writer] from the underlying writer. It does not close
// the underlying writer. It is an error to call Write after calling Close.
func (cw *Writer) Close() error {
	cw.writeMu.Lock()
	defer cw.writeMu.Unlock()

	if cw.w == nil {
		return errWriterNil
	}
	cw.w = nil

	return nil
}
