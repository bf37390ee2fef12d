package prettier

import (
	"maps"

	"github.com/ignite/response-prettier/internal/config"
	"github.com/ignite/response-prettier/internal/format"
	"github.com/pkg/errors"
)

// Defaults applied when the configuration leaves a field unset.
const (
	DefaultDecorator  = "prettier"
	DefaultQueryName  = "pretty"
	DefaultQueryValue = "true"
)

// Query is an enabled query trigger.
type Query struct {
	Name  string
	Value string
}

// Settings is the resolved, read-only configuration of the prettier.
type Settings struct {
	Decorator             string
	Query                 *Query // nil disables query triggering
	AlwaysOn              bool
	FallbackOnError       bool
	EnableOnSendHook      bool
	OverrideContentLength bool

	formatterOptions map[string]any
}

// FormatterOptions returns a copy of the base formatter options.
func (s Settings) FormatterOptions() map[string]any {
	return maps.Clone(s.formatterOptions)
}

// DefaultSettings returns the compiled-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Decorator:             DefaultDecorator,
		Query:                 &Query{Name: DefaultQueryName, Value: DefaultQueryValue},
		AlwaysOn:              false,
		FallbackOnError:       true,
		EnableOnSendHook:      true,
		OverrideContentLength: true,
		formatterOptions: map[string]any{
			"indentWidth": format.DefaultIndentWidth,
			"grammar":     format.DefaultGrammar,
		},
	}
}

// Resolve overlays cfg on the defaults. Unset fields keep their default;
// formatter options are merged key by key. The base formatter options are
// validated here so a bad grammar fails at setup, not on the first request.
func Resolve(cfg config.PrettierConfig) (Settings, error) {
	s := DefaultSettings()

	if cfg.Decorator != nil {
		if *cfg.Decorator == "" {
			return Settings{}, errors.New("prettier: decorator name is empty")
		}
		s.Decorator = *cfg.Decorator
	}
	if q := cfg.Query; q != nil {
		if q.Disabled {
			s.Query = nil
		} else {
			merged := *s.Query
			if q.Name != "" {
				merged.Name = q.Name
			}
			if q.Value != "" {
				merged.Value = q.Value
			}
			s.Query = &merged
		}
	}
	if cfg.AlwaysOn != nil {
		s.AlwaysOn = *cfg.AlwaysOn
	}
	if cfg.FallbackOnError != nil {
		s.FallbackOnError = *cfg.FallbackOnError
	}
	if cfg.EnableOnSendHook != nil {
		s.EnableOnSendHook = *cfg.EnableOnSendHook
	}
	if cfg.OverrideContentLength != nil {
		s.OverrideContentLength = *cfg.OverrideContentLength
	}

	opts := mergeOptions(s.formatterOptions, cfg.FormatterOptions)
	decoded, err := format.DecodeOptions(opts)
	if err != nil {
		return Settings{}, errors.Wrap(err, "prettier: formatter options")
	}
	if _, err := format.Lookup(decoded.Grammar); err != nil {
		return Settings{}, errors.Wrap(err, "prettier: formatter options")
	}
	s.formatterOptions = opts
	return s, nil
}
