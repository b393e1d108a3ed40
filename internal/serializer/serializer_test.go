package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `codec:"name"`
	Count uint32 `codec:"count"`
	Tags  []string
}

func TestRoundTrip(t *testing.T) {
	in := payload{Name: "Shelly", Count: 3, Tags: []string{"starter"}}

	raw, err := Encode(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, Decode(raw, &out))
	assert.Equal(t, in, out)
}

func TestDecodeIntoInterface(t *testing.T) {
	raw, err := Encode(map[string]interface{}{"k": "v"})
	require.NoError(t, err)

	var out interface{}
	require.NoError(t, Decode(raw, &out))

	m, ok := out.(map[string]interface{})
	require.True(t, ok, "maps decode as string-keyed maps")
	assert.Equal(t, "v", m["k"], "raw bytes decode as strings")
}

func TestDecodeGarbage(t *testing.T) {
	var out payload
	assert.Error(t, Decode([]byte{0xC1}, &out))
}
