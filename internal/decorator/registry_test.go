package decorator

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorateAndResolve(t *testing.T) {
	reg := NewRegistry()
	upper := func(s string) string { return strings.ToUpper(s) }

	require.NoError(t, reg.Decorate("upper", upper))
	assert.True(t, reg.Has("upper"))

	fn, err := Resolve[func(string) string](reg, "upper")
	require.NoError(t, err)
	assert.Equal(t, "ABC", fn("abc"))
}

func TestDecorateRejectsDuplicatesAndEmptyNames(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Decorate("x", 1))

	assert.ErrorIs(t, reg.Decorate("x", 2), ErrDuplicate)
	assert.ErrorIs(t, reg.Decorate("", 3), ErrEmptyName)

	v, ok := reg.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestResolveErrors(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Decorate("n", 42))

	_, err := Resolve[string](reg, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve[string](reg, "n")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNames(t *testing.T) {
	reg := NewRegistry()
	for _, n := range []string{"b", "c", "a"} {
		require.NoError(t, reg.Decorate(n, n))
	}
	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
}

func TestConcurrentLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Decorate("v", "value"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Resolve[string](reg, "v")
			assert.NoError(t, err)
			assert.Equal(t, "value", v)
		}()
	}
	wg.Wait()
}
