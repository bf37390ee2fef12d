package format

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Default option values used when the options map leaves a field unset.
const (
	DefaultIndentWidth = 2
	DefaultGrammar     = GrammarJSON

	maxIndentWidth = 16
)

// Options controls how an engine lays out its output.
type Options struct {
	IndentWidth int    `mapstructure:"indentWidth"`
	UseTabs     bool   `mapstructure:"useTabs"`
	Grammar     string `mapstructure:"grammar"`
	SortKeys    bool   `mapstructure:"sortKeys"` // json only
}

// Indent returns the indentation unit for one nesting level.
func (o Options) Indent() string {
	if o.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", o.IndentWidth)
}

// DecodeOptions converts an opaque options map into Options. Values are
// weakly typed, so "4" is accepted for indentWidth.
func DecodeOptions(m map[string]any) (Options, error) {
	opts := Options{
		IndentWidth: DefaultIndentWidth,
		Grammar:     DefaultGrammar,
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Options{}, errors.Wrap(err, "format: build options decoder")
	}
	if err := dec.Decode(m); err != nil {
		return Options{}, errors.Wrap(err, "format: decode options")
	}

	if opts.IndentWidth < 0 || opts.IndentWidth > maxIndentWidth {
		return Options{}, errors.Errorf("format: indentWidth %d out of range 0..%d", opts.IndentWidth, maxIndentWidth)
	}
	if opts.Grammar == "" {
		opts.Grammar = DefaultGrammar
	}
	return opts, nil
}
