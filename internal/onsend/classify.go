package onsend

import (
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var textualTypes = map[string]struct{}{
	"application/json":       {},
	"application/xml":        {},
	"application/yaml":       {},
	"application/x-yaml":     {},
	"application/hcl":        {},
	"application/javascript": {},
	"application/xhtml+xml":  {},
	"application/ld+json":    {},
}

// classify turns a buffered body into a payload. Bodies with a content
// encoding are opaque regardless of their declared type.
func classify(header http.Header, body []byte) Payload {
	if len(body) == 0 {
		return Empty()
	}
	if enc := header.Get("Content-Encoding"); enc != "" && !strings.EqualFold(enc, "identity") {
		return Buffer(body)
	}
	if isTextual(header.Get("Content-Type"), body) {
		return Text(string(body))
	}
	return Buffer(body)
}

func isTextual(contentType string, body []byte) bool {
	if contentType == "" {
		return underTextPlain(mimetype.Detect(body))
	}

	base, _, _ := strings.Cut(contentType, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	switch {
	case strings.HasPrefix(base, "text/"),
		strings.HasSuffix(base, "+json"),
		strings.HasSuffix(base, "+xml"),
		strings.HasSuffix(base, "+yaml"):
		return true
	}
	if _, ok := textualTypes[base]; ok {
		return true
	}
	return underTextPlain(mimetype.Lookup(base))
}

func underTextPlain(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
