package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_RoundTrip(t *testing.T) {
	payload := []byte(`[{"kind":"paragraph","text":"` + strings.Repeat("vacancy ", 200) + `"}]`)

	for _, name := range []string{"nop", "gzip", "brotli", "lz4"} {
		t.Run(name, func(t *testing.T) {
			c, err := New(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			encoded, err := c.Encode(payload)
			require.NoError(t, err)
			if name != "nop" {
				assert.Less(t, len(encoded), len(payload))
			}

			decoded, err := c.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestNew(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "nop", c.Name())

	_, err = New("zstd")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestGZip_ReusesWriters(t *testing.T) {
	g := NewGZip()
	first, err := g.Encode([]byte("admit card"))
	require.NoError(t, err)
	second, err := g.Encode([]byte("result"))
	require.NoError(t, err)

	decoded, err := g.Decode(first)
	require.NoError(t, err)
	assert.Equal(t, "admit card", string(decoded))
	decoded, err = g.Decode(second)
	require.NoError(t, err)
	assert.Equal(t, "result", string(decoded))

	_, err = g.Decode([]byte("not gzip"))
	assert.Error(t, err)
}
