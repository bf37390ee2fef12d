package prettier

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/pretty"
)

const prettyJSON = "{\n  \"test\": true,\n  \"format\": \"json\"\n}"

func newTestFormatter() *Formatter {
	return NewFormatter(DefaultSettings().FormatterOptions())
}

func trimmed(s string) string { return strings.TrimRight(s, "\n") }

func TestFormatText(t *testing.T) {
	out, err := newTestFormatter().Format(`{"test":true,"format":"json"}`, nil)
	require.NoError(t, err)
	assert.Equal(t, prettyJSON, trimmed(out))
}

func TestFormatStructuredContent(t *testing.T) {
	type doc struct {
		Test   bool   `json:"test"`
		Format string `json:"format"`
	}
	f := newTestFormatter()

	out, err := f.Format(doc{Test: true, Format: "json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, prettyJSON, trimmed(out))

	out, err = f.Format(&doc{Test: true, Format: "json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, prettyJSON, trimmed(out))

	out, err = f.Format([]any{1, "two", map[string]any{"b": 2, "a": 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, `[1,"two",{"a":1,"b":2}]`, string(pretty.Ugly([]byte(out))))
}

func TestFormatDoesNotEscapeHTML(t *testing.T) {
	out, err := newTestFormatter().Format(map[string]string{"html": "<b>&</b>"}, nil)
	require.NoError(t, err)
	assert.Contains(t, out, `"<b>&</b>"`)
}

func TestFormatBytesAndRawMessage(t *testing.T) {
	f := newTestFormatter()

	out, err := f.Format([]byte(`{"a":1}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", trimmed(out))

	out, err = f.Format(json.RawMessage(`{"a":1}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", trimmed(out))
}

func TestFormatScalars(t *testing.T) {
	f := newTestFormatter()

	out, err := f.Format(42, nil)
	require.NoError(t, err)
	assert.Equal(t, "42", trimmed(out))

	out, err = f.Format(true, nil)
	require.NoError(t, err)
	assert.Equal(t, "true", trimmed(out))

	out, err = f.Format(3.5, nil)
	require.NoError(t, err)
	assert.Equal(t, "3.5", trimmed(out))

	out, err = f.Format("0", nil)
	require.NoError(t, err)
	assert.Equal(t, "0", trimmed(out))
}

func TestFormatEmptyContent(t *testing.T) {
	f := newTestFormatter()

	for _, content := range []any{nil, "", []byte{}, (*string)(nil)} {
		out, err := f.Format(content, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestFormatRejectsFunctions(t *testing.T) {
	f := newTestFormatter()

	_, err := f.Format(func() {}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.NotErrorIs(t, err, ErrEngineFailure)

	_, err = f.Format(make(chan int), nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = f.Format(map[string]any{"fn": make(chan int)}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFormatEngineFailure(t *testing.T) {
	_, err := newTestFormatter().Format(`{"broken":`, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngineFailure)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "json", fe.Grammar)
	assert.Contains(t, fe.PublicMessage(), "prettier run into an unexpected error")
}

func TestFormatOverridesApplyPerCall(t *testing.T) {
	f := newTestFormatter()
	src := `<root><test>true</test><format>html</format></root>`

	out, err := f.Format(src, map[string]any{"grammar": "html"})
	require.NoError(t, err)
	assert.Equal(t, "<root>\n  <test>true</test>\n  <format>html</format>\n</root>", trimmed(out))

	// the next call without overrides is back on the json base options
	_, err = f.Format(src, nil)
	assert.ErrorIs(t, err, ErrEngineFailure)

	out, err = f.Format(`{"a":1}`, map[string]any{"indentWidth": 4})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1\n}", trimmed(out))

	out, err = f.Format(`{"a":1}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", trimmed(out))
}

func TestFormatInvalidOverride(t *testing.T) {
	_, err := newTestFormatter().Format(`{"a":1}`, map[string]any{"grammar": "toml"})
	assert.ErrorIs(t, err, ErrEngineFailure)

	_, err = newTestFormatter().Format(`{"a":1}`, map[string]any{"indentWidth": 100})
	assert.ErrorIs(t, err, ErrEngineFailure)
}

func TestFormatConcurrentCalls(t *testing.T) {
	f := newTestFormatter()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			width := i%4 + 1
			out, err := f.Format(`{"a":1}`, map[string]any{"indentWidth": width})
			assert.NoError(t, err)
			assert.Equal(t, "{\n"+strings.Repeat(" ", width)+"\"a\": 1\n}", trimmed(out))
		}(i)
	}
	wg.Wait()
}
