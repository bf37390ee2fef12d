package format

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// formatYAML re-emits every document in src. Decoding into yaml.Node keeps key
// order and comments.
func formatYAML(src string, opts Options) (string, error) {
	if opts.UseTabs {
		return "", errors.New("yaml does not allow tab indentation")
	}
	indent := opts.IndentWidth
	if indent < 2 {
		indent = 2
	}

	dec := yaml.NewDecoder(strings.NewReader(src))
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	docs := 0
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "invalid yaml")
		}
		if err := enc.Encode(&node); err != nil {
			return "", errors.Wrap(err, "encode yaml")
		}
		docs++
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "encode yaml")
	}
	if docs == 0 {
		return "", errors.New("invalid yaml: no documents")
	}
	return buf.String(), nil
}
