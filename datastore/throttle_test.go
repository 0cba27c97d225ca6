package datastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/binsparse/dtype"
)

func TestThrottled(t *testing.T) {
	t.Run("PassThrough", func(t *testing.T) {
		testStore(t, NewThrottled(NewMemoryStore(), ThrottleConfig{MaxConcurrent: 4}))
	})

	t.Run("RateLimited", func(t *testing.T) {
		// A generous budget keeps the test fast; payloads just have to fit
		// within the burst chunks.
		store := NewThrottled(NewMemoryStore(), ThrottleConfig{
			MaxConcurrent: 2,
			BytesPerSec:   1 << 20,
		})
		ctx := context.Background()

		arr := Array{Tag: dtype.Uint8, Count: 4, Data: []byte{1, 2, 3, 4}}
		require.NoError(t, store.PutArray(ctx, "a", arr))

		got, err := store.GetArray(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, arr.Data, got.Data)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		store := NewThrottled(NewMemoryStore(), ThrottleConfig{MaxConcurrent: 1})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := store.PutArray(ctx, "a", Array{Tag: dtype.Uint8, Count: 1, Data: []byte{1}})
		assert.Error(t, err)
	})
}
