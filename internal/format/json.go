package format

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// formatJSON validates src and lays it out one member or element per line.
// Width is left at zero so arrays are never folded onto a single line.
//
// src must hold exactly one JSON value: pretty only lays out the first value
// it finds, so anything trailing would be dropped silently.
func formatJSON(src string, opts Options) (string, error) {
	if !gjson.Valid(src) {
		var v any
		if err := json.UnmarshalFromString(src, &v); err != nil {
			return "", errors.Wrap(err, "invalid json")
		}
		return "", errors.New("invalid json: unexpected data after top-level value")
	}

	out := pretty.PrettyOptions([]byte(src), &pretty.Options{
		Width:    0,
		Prefix:   "",
		Indent:   opts.Indent(),
		SortKeys: opts.SortKeys,
	})
	return string(out), nil
}
