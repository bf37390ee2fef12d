package onsend

import "net/http"

// Hook observes an outgoing body and returns the body to send in its place.
// header is the response header map; changes to it are sent to the client.
// Returning an error aborts the response and the pipeline's ErrorHandler
// writes an error response instead.
type Hook interface {
	OnSend(r *http.Request, header http.Header, payload Payload) (Payload, error)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(r *http.Request, header http.Header, payload Payload) (Payload, error)

// OnSend calls f(r, header, payload).
func (f HookFunc) OnSend(r *http.Request, header http.Header, payload Payload) (Payload, error) {
	return f(r, header, payload)
}
