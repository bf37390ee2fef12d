package prettier

import (
	"net/http"
	"strconv"

	"github.com/ignite/response-prettier/internal/onsend"
	"github.com/ignite/response-prettier/internal/pkg/logger"
	"github.com/pkg/errors"
)

// Hook formats outgoing bodies when a request asks for it.
type Hook struct {
	settings  Settings
	formatter *Formatter
}

// NewHook creates a hook that formats with f under settings s.
func NewHook(s Settings, f *Formatter) *Hook {
	return &Hook{settings: s, formatter: f}
}

// OnSend implements onsend.Hook. Buffers and streams pass through untouched,
// as do empty bodies and requests that did not trigger formatting.
func (h *Hook) OnSend(r *http.Request, header http.Header, payload onsend.Payload) (onsend.Payload, error) {
	if payload.IsBinary() || payload.IsEmpty() {
		return payload, nil
	}
	if !h.Triggered(r) {
		return payload, nil
	}

	out, err := h.formatter.Format(payload.Text, nil)
	if err != nil {
		if h.settings.FallbackOnError && !errors.Is(err, ErrUnsupportedType) {
			logger.Debug("prettier: sending unformatted body", "path", r.URL.Path, "error", err)
			return payload, nil
		}
		return payload, errors.Wrapf(err, "format response for %s", r.URL.Path)
	}

	if out != "" && h.settings.OverrideContentLength {
		header.Set("Content-Length", strconv.Itoa(len(out)))
	}
	return onsend.Text(out), nil
}

// Triggered reports whether r should be formatted.
func (h *Hook) Triggered(r *http.Request) bool {
	if !h.settings.EnableOnSendHook {
		return false
	}
	if h.settings.AlwaysOn {
		return true
	}
	q := h.settings.Query
	if q == nil {
		return false
	}
	values, ok := r.URL.Query()[q.Name]
	return ok && len(values) > 0 && values[0] == q.Value
}
