package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDoc struct {
	Rank  int      `json:"rank"`
	NVals uint64   `json:"number_of_stored_values"`
	Names []string `json:"names,omitempty"`
}

func TestCodecs(t *testing.T) {
	doc := sampleDoc{Rank: 2, NVals: 42, Names: []string{"values", "axis_0_pointer"}}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(doc)
			require.NoError(t, err)

			var got sampleDoc
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, doc, got)
		})
	}
}

func TestCrossCodecCompatibility(t *testing.T) {
	// Both built-in codecs speak JSON; documents written by one must decode
	// with the other.
	doc := sampleDoc{Rank: 1, NVals: 7}

	data, err := (JSON{}).Marshal(doc)
	require.NoError(t, err)

	var got sampleDoc
	require.NoError(t, (GoJSON{}).Unmarshal(data, &got))
	assert.Equal(t, doc, got)
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshal(t *testing.T) {
	data := MustMarshal(nil, map[string]int{"a": 1})
	assert.NotEmpty(t, data)

	assert.Panics(t, func() {
		MustMarshal(JSON{}, make(chan int))
	})
}
