// Package onsend runs hooks against outgoing response bodies after the route
// handler has produced them and before they reach the client.
//
// The Pipeline middleware buffers what a handler writes, classifies it as
// text, binary buffer or stream, fills in Content-Length and hands the result
// to every registered Hook in order. Hooks may replace the body and adjust
// headers; the final payload is then written to the client.
package onsend

import "io"

// Kind identifies the shape of an outgoing body.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindBuffer
	KindStream
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindBuffer:
		return "buffer"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Payload is an outgoing response body.
type Payload struct {
	Kind   Kind
	Text   string
	Buffer []byte
	Stream io.Reader
}

// Empty returns a payload with no body.
func Empty() Payload { return Payload{Kind: KindEmpty} }

// Text returns a textual payload. An empty string yields an empty payload.
func Text(s string) Payload {
	if s == "" {
		return Empty()
	}
	return Payload{Kind: KindText, Text: s}
}

// Buffer returns an opaque binary payload.
func Buffer(b []byte) Payload { return Payload{Kind: KindBuffer, Buffer: b} }

// Stream returns a streamed payload.
func Stream(r io.Reader) Payload { return Payload{Kind: KindStream, Stream: r} }

// IsBinary reports whether the payload is a buffer or a stream.
func (p Payload) IsBinary() bool {
	return p.Kind == KindBuffer || p.Kind == KindStream
}

// IsEmpty reports whether the payload carries no bytes.
func (p Payload) IsEmpty() bool {
	switch p.Kind {
	case KindText:
		return p.Text == ""
	case KindBuffer:
		return len(p.Buffer) == 0
	case KindStream:
		return p.Stream == nil
	default:
		return true
	}
}

// Len returns the byte length of the body, or -1 for streams.
func (p Payload) Len() int {
	switch p.Kind {
	case KindText:
		return len(p.Text)
	case KindBuffer:
		return len(p.Buffer)
	case KindStream:
		return -1
	default:
		return 0
	}
}
