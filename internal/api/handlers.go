package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ignite/response-prettier/internal/decorator"
	"github.com/ignite/response-prettier/internal/format"
	"github.com/ignite/response-prettier/internal/pkg/httputil"
	"github.com/ignite/response-prettier/internal/pkg/logger"
	"github.com/ignite/response-prettier/internal/prettier"
	"github.com/pkg/errors"
)

const defaultMaxBodyBytes = 1 << 20

// Handlers contains the HTTP handlers
type Handlers struct {
	registry     *decorator.Registry
	decorator    string
	maxBodyBytes int64
}

// NewHandlers creates handlers that resolve capabilities from registry.
func NewHandlers(registry *decorator.Registry) *Handlers {
	return &Handlers{
		registry:     registry,
		decorator:    prettier.DefaultDecorator,
		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// SetFormatDecorator sets the capability name used by Format.
func (h *Handlers) SetFormatDecorator(name string) {
	h.decorator = name
}

// SetMaxBodyBytes sets the request body limit for Format.
func (h *Handlers) SetMaxBodyBytes(n int64) {
	h.maxBodyBytes = n
}

// Games is part of the sample document.
type Games struct {
	RDR2 string `json:"rdr2"`
	GTFO string `json:"gtfo"`
}

// SampleDocument is served by the index route.
type SampleDocument struct {
	BlackLivesMatter bool     `json:"blackLivesMatter"`
	FavSinger        string   `json:"favSinger"`
	VisitedCities    []string `json:"visitedCities"`
	Pi               float64  `json:"pi"`
	Games            Games    `json:"games"`
}

var sampleDocument = SampleDocument{
	BlackLivesMatter: true,
	FavSinger:        "Ahmet Kaya",
	VisitedCities:    []string{"Mardin", "Diyarbakır", "Rome", "Amsterdam", "Istanbul", "Kotor", "Mostar", "Belgrade"},
	Pi:               3.14,
	Games:            Games{RDR2: "completed", GTFO: "continues"},
}

// Index returns a sample document. Add ?pretty=true to see it formatted.
//
//	GET /
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, sampleDocument)
}

// Grammars lists the grammars /api/format accepts.
//
//	GET /api/grammars
func (h *Handlers) Grammars(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{"grammars": format.Grammars()})
}

// Format pretty-prints the request body with the decorated capability.
// grammar, indentWidth, useTabs and sortKeys query parameters override the
// configured options for this call. An empty body gets 204.
//
//	POST /api/format
func (h *Handlers) Format(w http.ResponseWriter, r *http.Request) {
	fn, err := decorator.Resolve[prettier.FormatFunc](h.registry, h.decorator)
	if err != nil {
		logger.Error("api: format capability unavailable", "decorator", h.decorator, "error", err)
		httputil.Error(w, http.StatusServiceUnavailable, fmt.Sprintf("format capability %q is not registered", h.decorator))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		httputil.BadRequest(w, safeErrorMessage(http.StatusBadRequest, err))
		return
	}

	overrides := overridesFromQuery(r)
	out, err := fn(string(body), overrides)
	if err != nil {
		respondFormatError(w, err)
		return
	}

	if out == "" {
		httputil.NoContent(w)
		return
	}
	httputil.Text(w, http.StatusOK, responseContentType(r, overrides), out)
}

var overrideParams = []string{"grammar", "indentWidth", "useTabs", "sortKeys"}

// overridesFromQuery passes the raw strings on; option decoding is weakly
// typed so "4" and "true" are accepted.
func overridesFromQuery(r *http.Request) map[string]any {
	q := r.URL.Query()
	overrides := make(map[string]any)
	for _, name := range overrideParams {
		if v := q.Get(name); v != "" {
			if name == "grammar" {
				v = strings.ToLower(v)
			}
			overrides[name] = v
		}
	}
	return overrides
}

var grammarContentTypes = map[string]string{
	format.GrammarJSON:          "application/json; charset=utf-8",
	format.GrammarJSONStringify: "application/json; charset=utf-8",
	format.GrammarYAML:          "application/yaml; charset=utf-8",
	format.GrammarXML:           "application/xml; charset=utf-8",
	format.GrammarHTML:          "text/html; charset=utf-8",
	format.GrammarHCL:           "text/plain; charset=utf-8",
}

// responseContentType prefers the grammar override, then the request's own
// content type.
func responseContentType(r *http.Request, overrides map[string]any) string {
	if g, ok := overrides["grammar"].(string); ok {
		if ct, ok := grammarContentTypes[g]; ok {
			return ct
		}
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "text/plain; charset=utf-8"
}

func respondFormatError(w http.ResponseWriter, err error) {
	var fe *prettier.FormatError
	switch {
	case errors.Is(err, prettier.ErrUnsupportedType):
		logger.Error("api: unsupported content", "error", err)
		httputil.Error(w, http.StatusInternalServerError, publicMessage(err))
	case errors.As(err, &fe):
		httputil.Error(w, http.StatusUnprocessableEntity, fe.PublicMessage())
	default:
		logger.Error("api: format failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, safeErrorMessage(http.StatusInternalServerError, err))
	}
}
