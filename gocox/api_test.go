package gocox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordString(t *testing.T) {
	require.Equal(t, "()", Word{}.String())
	require.Equal(t, "()", Word(nil).String())
	require.Equal(t, "(0 1 2)", Word{0, 1, 2}.String())
	require.Equal(t, "(10 3)", Word{10, 3}.String())
}

func TestWordRank(t *testing.T) {
	require.Equal(t, 0, Word{}.Rank())
	require.Equal(t, 2, Word{0, 1, 0, 1}.Rank())
	require.Equal(t, 3, Word{2, 0, 1, 2}.Rank())
}

func TestWordReversed(t *testing.T) {
	require.Equal(t, Word{2, 1, 0}, Word{0, 1, 2}.Reversed())
	require.Empty(t, Word{}.Reversed())
}

func TestStateKey(t *testing.T) {
	states := [][]int{
		{1, 1, 1},
		{-1, 2, 1},
		{5, 5, 1, 1, -11, 5, 1, 1},
		{1 << 40, -(1 << 33)},
	}

	var buf StateKeyBuf
	for _, state := range states {
		key := AppendStateKey(buf[:0], state)
		got, err := key.DecodeState(nil)
		require.NoError(t, err)
		require.Equal(t, state, got)
	}

	k1 := AppendStateKey(nil, []int{1, -1})
	k2 := AppendStateKey(nil, []int{-1, 1})
	require.NotEqual(t, string(k1), string(k2))

	_, err := StateKey{0x80}.DecodeState(nil)
	require.ErrorIs(t, err, ErrBadKey)
}

func TestParseSetBackend(t *testing.T) {
	b, ok := ParseSetBackend("LSM")
	require.True(t, ok)
	require.Equal(t, SetLSM, b)

	b, ok = ParseSetBackend("mem")
	require.True(t, ok)
	require.Equal(t, SetInMemory, b)

	_, ok = ParseSetBackend("redis")
	require.False(t, ok)
}

func TestIsSupportedBond(t *testing.T) {
	for _, m := range []int{0, 2, 3, 4, 6, Infinity} {
		require.True(t, IsSupportedBond(m), "m=%d", m)
	}
	for _, m := range []int{1, 5, 7, -2} {
		require.False(t, IsSupportedBond(m), "m=%d", m)
	}
}
