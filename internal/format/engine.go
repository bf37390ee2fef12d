package format

import (
	"sort"

	"github.com/pkg/errors"
)

// Grammar names understood by Lookup.
const (
	GrammarJSON          = "json"
	GrammarJSONStringify = "json-stringify"
	GrammarYAML          = "yaml"
	GrammarXML           = "xml"
	GrammarHTML          = "html"
	GrammarHCL           = "hcl"
)

// ErrUnknownGrammar is returned when no engine is registered for a grammar.
var ErrUnknownGrammar = errors.New("unknown grammar")

// Engine pretty-prints text of a single grammar.
type Engine interface {
	Format(src string, opts Options) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(src string, opts Options) (string, error)

// Format calls f(src, opts).
func (f EngineFunc) Format(src string, opts Options) (string, error) {
	return f(src, opts)
}

var engines = map[string]Engine{
	GrammarJSON:          EngineFunc(formatJSON),
	GrammarJSONStringify: EngineFunc(formatJSON),
	GrammarYAML:          EngineFunc(formatYAML),
	GrammarXML:           markupEngine{permissive: false},
	GrammarHTML:          markupEngine{permissive: true},
	GrammarHCL:           EngineFunc(formatHCL),
}

// Lookup returns the engine registered for grammar.
func Lookup(grammar string) (Engine, error) {
	e, ok := engines[grammar]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGrammar, "%q", grammar)
	}
	return e, nil
}

// Grammars lists the supported grammar names in sorted order.
func Grammars() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format runs the engine selected by opts.Grammar over src.
func Format(src string, opts Options) (string, error) {
	e, err := Lookup(opts.Grammar)
	if err != nil {
		return "", err
	}
	return e.Format(src, opts)
}
