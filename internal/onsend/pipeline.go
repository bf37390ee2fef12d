package onsend

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/ignite/response-prettier/internal/pkg/logger"
	"github.com/pkg/errors"
)

// ErrorHandler writes the response for a request whose hook chain failed.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

var (
	errWriteAfterStream = errors.New("onsend: write after SendStream")
	errAborted          = errors.New("onsend: response aborted by hook error")
)

// Pipeline buffers handler output and runs hooks before it is sent.
// Hooks are added during setup; AddHook must not be called while serving.
type Pipeline struct {
	hooks   []Hook
	onError ErrorHandler
}

// NewPipeline creates a pipeline. A nil onError writes a plain 500.
func NewPipeline(onError ErrorHandler) *Pipeline {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
	return &Pipeline{onError: onError}
}

// AddHook appends h to the chain.
func (p *Pipeline) AddHook(h Hook) {
	p.hooks = append(p.hooks, h)
}

// Len returns the number of registered hooks.
func (p *Pipeline) Len() int {
	return len(p.hooks)
}

// Handler is the middleware entry point.
func (p *Pipeline) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &recorder{w: w, r: r, p: p, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		rec.finish()
	})
}

func (p *Pipeline) run(r *http.Request, header http.Header, payload Payload) (Payload, error) {
	for _, h := range p.hooks {
		var err error
		payload, err = h.OnSend(r, header, payload)
		if err != nil {
			return Payload{}, err
		}
	}
	return payload, nil
}

// recorder captures a handler's response until it is committed, either when
// the handler returns or when it flushes.
type recorder struct {
	w      http.ResponseWriter
	r      *http.Request
	p      *Pipeline
	status int
	buf    bytes.Buffer
	stream io.Reader

	committed bool
	aborted   bool
}

func (rec *recorder) Header() http.Header {
	return rec.w.Header()
}

func (rec *recorder) WriteHeader(code int) {
	if rec.committed {
		if !rec.aborted {
			rec.w.WriteHeader(code)
		}
		return
	}
	rec.status = code
}

func (rec *recorder) Write(b []byte) (int, error) {
	switch {
	case rec.aborted:
		return 0, errAborted
	case rec.committed:
		return rec.w.Write(b)
	case rec.stream != nil:
		return 0, errWriteAfterStream
	}
	return rec.buf.Write(b)
}

// Flush commits whatever has been buffered as a stream and switches the
// recorder to pass-through.
func (rec *recorder) Flush() {
	if !rec.committed {
		prefix := io.Reader(bytes.NewReader(rec.buf.Bytes()))
		if rec.stream != nil {
			prefix = rec.stream
		}
		rec.commit(Stream(prefix))
	}
	if !rec.aborted {
		_ = http.NewResponseController(rec.w).Flush()
	}
}

func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.w
}

func (rec *recorder) setStream(r io.Reader) error {
	if rec.committed || rec.buf.Len() > 0 {
		return errors.New("onsend: SendStream after body was written")
	}
	rec.stream = r
	return nil
}

func (rec *recorder) finish() {
	if rec.committed {
		return
	}

	var payload Payload
	if rec.stream != nil {
		payload = Stream(rec.stream)
	} else {
		payload = classify(rec.w.Header(), rec.buf.Bytes())
		if n := payload.Len(); n > 0 && rec.w.Header().Get("Content-Length") == "" {
			rec.w.Header().Set("Content-Length", strconv.Itoa(n))
		}
	}
	rec.commit(payload)
}

func (rec *recorder) commit(payload Payload) {
	rec.committed = true

	out, err := rec.p.run(rec.r, rec.w.Header(), payload)
	if err != nil {
		rec.aborted = true
		h := rec.w.Header()
		h.Del("Content-Length")
		h.Del("Content-Encoding")
		rec.p.onError(rec.w, rec.r, err)
		return
	}

	rec.w.WriteHeader(rec.status)
	if err := write(rec.w, out); err != nil {
		logger.Warn("onsend: write response body failed", "path", rec.r.URL.Path, "error", err)
	}
}

func write(w http.ResponseWriter, p Payload) error {
	switch p.Kind {
	case KindText:
		_, err := io.WriteString(w, p.Text)
		return err
	case KindBuffer:
		_, err := w.Write(p.Buffer)
		return err
	case KindStream:
		if p.Stream == nil {
			return nil
		}
		_, err := copyStream(w, p.Stream)
		return err
	}
	return nil
}
