package onsend

import (
	"io"
	"net/http"
)

const streamChunk = 32 * 1024

// SendStream sends r as the response body without buffering it. Inside a
// Pipeline the reader is handed to the hooks as a stream payload; otherwise it
// is copied to w directly. contentType is set when non-empty.
func SendStream(w http.ResponseWriter, contentType string, r io.Reader) error {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if rec := findRecorder(w); rec != nil {
		return rec.setStream(r)
	}
	_, err := copyStream(w, r)
	return err
}

func findRecorder(w http.ResponseWriter) *recorder {
	for {
		switch v := w.(type) {
		case *recorder:
			return v
		case interface{ Unwrap() http.ResponseWriter }:
			w = v.Unwrap()
		default:
			return nil
		}
	}
}

// copyStream copies r to w, flushing after every chunk, and closes r when
// it is an io.Closer.
func copyStream(w http.ResponseWriter, r io.Reader) (int64, error) {
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	rc := http.NewResponseController(w)
	buf := make([]byte, streamChunk)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			written, werr := w.Write(buf[:n])
			total += int64(written)
			if werr != nil {
				return total, werr
			}
			_ = rc.Flush()
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Reset discards whatever the handler has buffered so far, so an error
// response can replace a half-written body. A reader handed to SendStream is
// closed if it is an io.Closer. It reports false when the
// response was already committed. Outside a Pipeline there is nothing to
// discard and Reset reports true.
func Reset(w http.ResponseWriter) bool {
	rec := findRecorder(w)
	if rec == nil {
		return true
	}
	if rec.committed {
		return false
	}
	rec.buf.Reset()
	if c, ok := rec.stream.(io.Closer); ok {
		_ = c.Close()
	}
	rec.stream = nil
	rec.status = http.StatusOK
	h := rec.w.Header()
	h.Del("Content-Length")
	h.Del("Content-Encoding")
	return true
}
