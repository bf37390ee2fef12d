package api

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/ignite/response-prettier/internal/onsend"
	"github.com/ignite/response-prettier/internal/pkg/httputil"
	"github.com/ignite/response-prettier/internal/pkg/logger"
	"github.com/pkg/errors"
)

// recoverer turns a handler panic into a 500 JSON error envelope. Anything
// the handler buffered before panicking is discarded. http.ErrAbortHandler
// is re-raised so net/http can abort the connection.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger.Error("api: handler panic",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rvr),
				"stack", string(debug.Stack()),
			)

			if !onsend.Reset(w) {
				// Headers are already on the wire.
				return
			}
			httputil.Error(w, http.StatusInternalServerError, safeErrorMessage(http.StatusInternalServerError, errors.Errorf("%v", rvr)))
		}()

		next.ServeHTTP(w, r)
	})
}
