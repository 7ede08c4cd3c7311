package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWithDomainSeparation(t *testing.T) {
	a := HashWithDomain("a", []byte("bc"))
	b := HashWithDomain("ab", []byte("c"))
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)
}

func TestDigestStableAcrossKeyOrder(t *testing.T) {
	first, err := Digest(DomainDataset, map[string]any{"a": 1, "b": []any{"x"}})
	require.NoError(t, err)
	second, err := Digest(DomainDataset, map[string]any{"b": []any{"x"}, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDigestDomainMatters(t *testing.T) {
	first, err := Digest(DomainDataset, "x")
	require.NoError(t, err)
	second, err := Digest("other/v1", "x")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDigestError(t *testing.T) {
	_, err := Digest(DomainDataset, map[string]any{"x": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canonical digest")
}
