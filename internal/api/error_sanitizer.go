package api

import (
	"net/http"
	"strings"

	"github.com/ignite/response-prettier/internal/pkg/httputil"
	"github.com/ignite/response-prettier/internal/pkg/logger"
	"github.com/pkg/errors"
)

// =============================================================================
// ERROR SANITIZER
// Internal error text (file paths, engine internals) is never sent to API
// consumers unless the error declares a public message. The full error is
// logged server-side.
// =============================================================================

// publicError is implemented by errors that carry a client-safe message.
type publicError interface {
	PublicMessage() string
}

// publicMessage returns the public message of err if it has one, otherwise
// a sanitized 500 message.
func publicMessage(err error) string {
	var pe publicError
	if errors.As(err, &pe) {
		return pe.PublicMessage()
	}
	return safeErrorMessage(http.StatusInternalServerError, err)
}

// respondHookError is the onsend error handler: a hook that fails turns the
// response into a 500 with the standard error envelope.
func respondHookError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("api: outbound hook failed", "method", r.Method, "path", r.URL.Path, "error", err)
	httputil.Error(w, http.StatusInternalServerError, publicMessage(err))
}

// safeErrorMessage maps common internal error patterns to public-safe messages.
// For 400-level errors, the original message is typically fine (user input issues).
// For 500-level errors, this returns a generic safe message.
func safeErrorMessage(code int, internalErr error) string {
	if code < 500 {
		if internalErr != nil {
			return internalErr.Error()
		}
		return "Bad request"
	}

	if internalErr == nil {
		return "An internal error occurred"
	}

	errStr := strings.ToLower(internalErr.Error())

	switch {
	case strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "context canceled"):
		return "Request timed out"

	case strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "marshal") ||
		strings.Contains(errStr, "decode") ||
		strings.Contains(errStr, "parse"):
		return "Invalid request format"

	case strings.Contains(errStr, "permission") ||
		strings.Contains(errStr, "access denied"):
		return "Access denied"

	default:
		return "An internal error occurred"
	}
}
