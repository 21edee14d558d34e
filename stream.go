package htmlstrip

// Stream is the per-response context of the compactor. Buffers of one document
// must be passed to Compact in order, each exactly once.
//
// A Stream holds no resources and must not be shared between documents or
// used from more than one goroutine at a time.
type Stream struct {
	state State
}

// NewStream returns a Stream positioned at the start of a document.
func NewStream() *Stream {
	return new(Stream)
}

// Compact rewrites buf in place and returns the compacted prefix of it.
func (s *Stream) Compact(buf []byte) []byte {
	return buf[:Compact(buf, &s.state)]
}

// State returns the automaton state reached after the last buffer.
func (s *Stream) State() State {
	return s.state
}

// Aborted reports whether the stream met markup it could not classify.
// From then on every byte is copied unchanged.
func (s *Stream) Aborted() bool {
	return s.state.region == RegionAbort
}

// Reset positions s at the start of a new document.
func (s *Stream) Reset() {
	s.state = State{}
}
