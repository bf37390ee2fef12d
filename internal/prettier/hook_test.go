package prettier

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ignite/response-prettier/internal/config"
	"github.com/ignite/response-prettier/internal/onsend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compactJSON = `{"test":true,"format":"json"}`

func newTestHook(t *testing.T, cfg config.PrettierConfig) *Hook {
	t.Helper()
	p, err := New(cfg)
	require.NoError(t, err)
	return p.Hook()
}

func lengthHeader(n int) http.Header {
	h := http.Header{}
	h.Set("Content-Length", strconv.Itoa(n))
	return h
}

func TestOnSendFormatsWhenQueryMatches(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{})
	header := lengthHeader(len(compactJSON))
	r := httptest.NewRequest(http.MethodGet, "/?pretty=true", nil)

	out, err := h.OnSend(r, header, onsend.Text(compactJSON))
	require.NoError(t, err)

	assert.Equal(t, onsend.KindText, out.Kind)
	assert.Equal(t, prettyJSON, trimmed(out.Text))
	assert.Equal(t, strconv.Itoa(len(out.Text)), header.Get("Content-Length"))
}

func TestOnSendLeavesUntriggeredBodies(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{})

	for _, target := range []string{"/", "/?pretty=false", "/?pretty=TRUE", "/?other=true", "/?pretty=1"} {
		header := lengthHeader(len(compactJSON))
		r := httptest.NewRequest(http.MethodGet, target, nil)

		out, err := h.OnSend(r, header, onsend.Text(compactJSON))
		require.NoError(t, err)
		assert.Equal(t, compactJSON, out.Text, target)
		assert.Equal(t, strconv.Itoa(len(compactJSON)), header.Get("Content-Length"), target)
	}
}

func TestOnSendUsesFirstQueryValue(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{})

	r := httptest.NewRequest(http.MethodGet, "/?pretty=true&pretty=false", nil)
	assert.True(t, h.Triggered(r))

	r = httptest.NewRequest(http.MethodGet, "/?pretty=false&pretty=true", nil)
	assert.False(t, h.Triggered(r))
}

func TestOnSendCustomQuery(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{
		Query: &config.QueryTrigger{Name: "beautify", Value: "yes"},
	})

	assert.True(t, h.Triggered(httptest.NewRequest(http.MethodGet, "/?beautify=yes", nil)))
	assert.False(t, h.Triggered(httptest.NewRequest(http.MethodGet, "/?pretty=true", nil)))
}

func TestOnSendQueryDisabled(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{Query: &config.QueryTrigger{Disabled: true}})

	out, err := h.OnSend(httptest.NewRequest(http.MethodGet, "/?pretty=true", nil), http.Header{}, onsend.Text(compactJSON))
	require.NoError(t, err)
	assert.Equal(t, compactJSON, out.Text)
}

func TestOnSendAlwaysOn(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{AlwaysOn: config.Bool(true)})

	out, err := h.OnSend(httptest.NewRequest(http.MethodGet, "/", nil), http.Header{}, onsend.Text(compactJSON))
	require.NoError(t, err)
	assert.Equal(t, prettyJSON, trimmed(out.Text))
}

func TestOnSendHookDisabled(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{
		AlwaysOn:         config.Bool(true),
		EnableOnSendHook: config.Bool(false),
	})

	out, err := h.OnSend(httptest.NewRequest(http.MethodGet, "/?pretty=true", nil), http.Header{}, onsend.Text(compactJSON))
	require.NoError(t, err)
	assert.Equal(t, compactJSON, out.Text)
}

func TestOnSendPassesBinaryThrough(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{AlwaysOn: config.Bool(true)})
	r := httptest.NewRequest(http.MethodGet, "/?pretty=true", nil)

	buf := []byte(compactJSON)
	out, err := h.OnSend(r, http.Header{}, onsend.Buffer(buf))
	require.NoError(t, err)
	assert.Equal(t, onsend.KindBuffer, out.Kind)
	assert.Equal(t, []byte(compactJSON), out.Buffer)

	stream := bytes.NewReader([]byte(compactJSON))
	out, err = h.OnSend(r, http.Header{}, onsend.Stream(stream))
	require.NoError(t, err)
	assert.Equal(t, onsend.KindStream, out.Kind)
	assert.Same(t, stream, out.Stream)
}

func TestOnSendEmptyBody(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{AlwaysOn: config.Bool(true), FallbackOnError: config.Bool(false)})
	header := http.Header{}

	out, err := h.OnSend(httptest.NewRequest(http.MethodGet, "/?pretty=true", nil), header, onsend.Empty())
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
	assert.Empty(t, header.Get("Content-Length"))
}

func TestOnSendFallbackOnError(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{})
	header := lengthHeader(5)

	out, err := h.OnSend(httptest.NewRequest(http.MethodGet, "/?pretty=true", nil), header, onsend.Text("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", out.Text)
	assert.Equal(t, "5", header.Get("Content-Length"))
}

func TestOnSendPropagatesWithoutFallback(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{FallbackOnError: config.Bool(false)})

	_, err := h.OnSend(httptest.NewRequest(http.MethodGet, "/?pretty=true", nil), http.Header{}, onsend.Text("plain"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngineFailure)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.PublicMessage(), "invalid json")
}

func TestOnSendWithoutContentLengthOverride(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{OverrideContentLength: config.Bool(false)})
	header := lengthHeader(len(compactJSON))

	out, err := h.OnSend(httptest.NewRequest(http.MethodGet, "/?pretty=true", nil), header, onsend.Text(compactJSON))
	require.NoError(t, err)
	assert.Equal(t, prettyJSON, trimmed(out.Text))
	assert.Equal(t, strconv.Itoa(len(compactJSON)), header.Get("Content-Length"))
}

func TestOnSendFormatsNumericBody(t *testing.T) {
	h := newTestHook(t, config.PrettierConfig{FallbackOnError: config.Bool(false)})
	header := lengthHeader(2)

	out, err := h.OnSend(httptest.NewRequest(http.MethodGet, "/?pretty=true", nil), header, onsend.Text("42"))
	require.NoError(t, err)
	assert.Equal(t, "42", trimmed(out.Text))
	assert.Equal(t, strconv.Itoa(len(out.Text)), header.Get("Content-Length"))
}
