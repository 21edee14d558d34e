// Package htmlstrip removes insignificant whitespace from HTML while it streams,
// one buffer at a time, without holding any bytes back between buffers.
package htmlstrip

import "errors"

var errDestinationTooSmall = errors.New("destination must be at least the length of source")

// Compact strips insignificant whitespace from buf in place and returns the
// new length. buf[:n] holds the output and the bytes after it are garbage.
//
// state carries the automaton from the previous buffer of the same stream and
// is updated for the next one; a nil state compacts buf as a whole document.
func Compact(buf []byte, state *State) (n int) {
	if state == nil {
		state = new(State)
	}

	s := *state
	for _, c := range buf {
		var keep bool
		if s, keep = Transition(s, c); keep {
			// n never passes the read position, so buf[n] has already been read.
			buf[n] = c
			n++
		}
	}
	*state = s

	return n
}

// CompactAll compacts an entire HTML document from src into dst in a single call
// and returns the number of bytes written to dst. dst may be src.
//
// dst must be at least len(src) bytes.
func CompactAll(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, errDestinationTooSmall
	}

	var s State
	n := 0
	for _, c := range src {
		var keep bool
		if s, keep = Transition(s, c); keep {
			dst[n] = c
			n++
		}
	}

	return n, nil
}
