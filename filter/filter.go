// Package filter strips insignificant whitespace from HTML responses of a
// net/http handler.
//
// Whether a response is compacted is decided once, when its header is written:
// the status must be 200, 403 or 404, the request must not be HEAD, the
// Content-Type must start with text/html and no Content-Encoding may be set.
// Compacted responses lose their Content-Length and Accept-Ranges headers.
package filter

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/VictoriaMetrics/metrics"

	"github.com/mnightingale/htmlstrip"
)

const scratchSize = 32 * 1024

var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, scratchSize)
		return &b
	},
}

// Filter is an [http.Handler] that compacts eligible responses of the wrapped handler.
type Filter struct {
	next    http.Handler
	enabled func(*http.Request) bool
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(f *Filter)

// WithEnabled decides per request whether compaction may be engaged at all.
// By default it is enabled for every request.
func WithEnabled(enabled func(*http.Request) bool) Option {
	return func(f *Filter) {
		f.enabled = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) {
		f.logger = logger
	}
}

// WithMetrics registers the filter counters in set instead of the default set.
func WithMetrics(set *metrics.Set) Option {
	return func(f *Filter) {
		f.metrics = NewMetrics(set)
	}
}

// New returns a Filter wrapping next.
func New(next http.Handler, opts ...Option) *Filter {
	f := &Filter{
		next:    next,
		enabled: func(*http.Request) bool { return true },
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.metrics == nil {
		f.metrics = NewMetrics(metrics.GetDefaultSet())
	}

	return f
}

func (f *Filter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sw := &responseWriter{ResponseWriter: w, f: f, r: r}
	defer sw.finish()

	f.next.ServeHTTP(sw, r)
}

// Eligible reports whether a response may be compacted, given the request
// method, the response status and the response header.
func Eligible(method string, status int, h http.Header) bool {
	switch status {
	case http.StatusOK, http.StatusForbidden, http.StatusNotFound:
	default:
		return false
	}

	if method == http.MethodHead {
		return false
	}

	if h.Get("Content-Encoding") != "" {
		return false
	}

	const html = "text/html"
	ct := h.Get("Content-Type")
	return len(ct) >= len(html) && strings.EqualFold(ct[:len(html)], html)
}

type responseWriter struct {
	http.ResponseWriter

	f *Filter
	r *http.Request

	decided bool
	stream  *htmlstrip.Stream

	read, written int64
}

func (w *responseWriter) decide(status int) {
	w.decided = true

	h := w.Header()
	if !Eligible(w.r.Method, status, h) || !w.f.enabled(w.r) {
		w.f.metrics.skipped.Inc()
		return
	}

	h.Del("Content-Length")
	h.Del("Accept-Ranges")

	w.stream = htmlstrip.NewStream()
	w.f.metrics.engaged.Inc()
	w.f.logger.Debug("compacting response", "method", w.r.Method, "path", w.r.URL.Path, "status", status)
}

func (w *responseWriter) WriteHeader(status int) {
	// Informational responses precede the real header.
	if !w.decided && status >= 200 {
		w.decide(status)
	}
	w.ResponseWriter.WriteHeader(status)
}

// Write compacts p through a scratch buffer so the caller's slice is never modified.
func (w *responseWriter) Write(p []byte) (int, error) {
	if !w.decided {
		w.WriteHeader(http.StatusOK)
	}
	if w.stream == nil {
		return w.ResponseWriter.Write(p)
	}

	bp := scratchPool.Get().(*[]byte)
	defer scratchPool.Put(bp)
	scratch := *bp

	n := 0
	for len(p) > 0 {
		chunk := scratch[:copy(scratch, p)]
		out := w.stream.Compact(chunk)

		if len(out) > 0 {
			m, err := w.ResponseWriter.Write(out)
			w.written += int64(m)
			if err != nil {
				w.read += int64(n)
				return n, err
			}
		}

		n += len(chunk)
		p = p[len(chunk):]
	}
	w.read += int64(n)

	return n, nil
}

func (w *responseWriter) Flush() {
	if fl, ok := w.ResponseWriter.(http.Flusher); ok {
		fl.Flush()
	}
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *responseWriter) finish() {
	if w.stream == nil {
		return
	}

	w.f.metrics.bytesRead.Add(int(w.read))
	w.f.metrics.bytesWritten.Add(int(w.written))
	if w.stream.Aborted() {
		w.f.metrics.aborted.Inc()
		w.f.logger.Debug("compaction aborted on unclassifiable markup", "path", w.r.URL.Path)
	}
}
