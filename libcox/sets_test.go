package libcox

import (
	"testing"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/stretchr/testify/require"
)

func TestStateSets(t *testing.T) {
	for _, backend := range []gocox.SetBackend{gocox.SetInMemory, gocox.SetLSM} {
		t.Run(backend.String(), func(t *testing.T) {
			set := NewStateSet(backend)
			defer set.Close()

			var buf gocox.StateKeyBuf
			keyA := gocox.AppendStateKey(buf[:0], []int{1, -1, 2})
			require.False(t, set.Has(keyA))
			require.True(t, set.TryAdd(keyA))
			require.False(t, set.TryAdd(keyA))
			require.True(t, set.Has(keyA))

			// reusing the key buffer must not disturb the stored copy
			keyB := gocox.AppendStateKey(buf[:0], []int{-1, 1, 2})
			require.False(t, set.Has(keyB))
			require.True(t, set.TryAdd(keyB))
			require.Equal(t, 2, set.Len())

			keyA = gocox.AppendStateKey(buf[:0], []int{1, -1, 2})
			require.True(t, set.Has(keyA))

			set.Close()
			require.Zero(t, set.Len())
			require.True(t, set.TryAdd(keyA))
			require.Equal(t, 1, set.Len())
		})
	}
}

func TestMemSetPoolRollover(t *testing.T) {
	set := newMemSet(8)
	defer set.Close()

	var buf gocox.StateKeyBuf
	for i := 0; i < 100; i++ {
		require.True(t, set.TryAdd(gocox.AppendStateKey(buf[:0], []int{i, -i, 1000 * i})))
	}
	for i := 0; i < 100; i++ {
		require.True(t, set.Has(gocox.AppendStateKey(buf[:0], []int{i, -i, 1000 * i})))
	}
	require.Equal(t, 100, set.Len())
}
