package prettier

import (
	"fmt"
	"maps"
	"reflect"

	"github.com/ignite/response-prettier/internal/format"
	jsoniter "github.com/json-iterator/go"
)

// compact serializes structured content the way a browser's JSON.stringify
// would: no HTML escaping, no whitespace. Map keys are sorted so the output
// is stable.
var compact = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// FormatFunc is the capability exposed to handlers under the decorator name.
type FormatFunc func(content any, overrides map[string]any) (string, error)

// Formatter turns response content into pretty-printed text. It holds only
// its base options and is safe for concurrent use.
type Formatter struct {
	base map[string]any
}

// NewFormatter creates a formatter with base engine options.
func NewFormatter(base map[string]any) *Formatter {
	return &Formatter{base: maps.Clone(base)}
}

// Format normalizes content to text and pretty-prints it. overrides are
// merged over the base options for this call only.
//
// Strings are used verbatim, byte slices as text, and maps, slices, arrays
// and structs are serialized compactly first. Functions and channels fail
// with ErrUnsupportedType; rejected input fails with ErrEngineFailure.
// Content that normalizes to empty text returns "" without running an
// engine.
func (f *Formatter) Format(content any, overrides map[string]any) (string, error) {
	text, err := normalize(content)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", nil
	}

	opts, err := format.DecodeOptions(mergeOptions(f.base, overrides))
	if err != nil {
		return "", engineFailure("", err)
	}
	out, err := format.Format(text, opts)
	if err != nil {
		return "", engineFailure(opts.Grammar, err)
	}
	return out, nil
}

func normalize(content any) (string, error) {
	switch v := content.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}

	rv := reflect.ValueOf(content)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return "", unsupported("cannot format %T values", content)
	case reflect.Pointer:
		if rv.IsNil() {
			return "", nil
		}
		return normalize(rv.Elem().Interface())
	case reflect.String:
		return rv.String(), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), nil
		}
		return marshal(content)
	case reflect.Map, reflect.Array, reflect.Struct:
		return marshal(content)
	}
	return fmt.Sprint(content), nil
}

func marshal(content any) (string, error) {
	s, err := compact.MarshalToString(content)
	if err != nil {
		return "", unsupported("cannot serialize %T: %v", content, err)
	}
	return s, nil
}
