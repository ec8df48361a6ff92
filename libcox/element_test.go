package libcox_test

import (
	"bytes"
	"testing"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/fine-structures/coxeter/libcox"
	"github.com/fine-structures/coxeter/libcox/systems"
	"github.com/stretchr/testify/require"
)

var gReg = systems.NewRegistry()

func lookup(t *testing.T, name string) *libcox.System {
	sys, err := gReg.Lookup(name)
	require.NoError(t, err)
	return sys
}

func fromWord(t *testing.T, sys *libcox.System, word ...int) *libcox.Element {
	X, err := libcox.NewFromWord(sys, word)
	require.NoError(t, err)
	return X
}

func TestGeneratorInvolution(t *testing.T) {
	for _, name := range []string{"A4", "B3", "D5", "E6", "F4", "G2"} {
		sys := lookup(t, name)
		id := libcox.NewIdentity(sys)
		for s := 0; s < sys.Size(); s++ {
			X := fromWord(t, sys, s)
			require.Equal(t, 1, X.Length(), "%s s%d", name, s)
			require.True(t, X.HasRightDescent(s))

			require.NoError(t, X.RightMultiply(s))
			require.Equal(t, 0, X.Length())
			require.True(t, X.Equals(id), "%s s%d", name, s)
			require.Equal(t, id.OneLine(), X.OneLine())
		}
	}
}

func TestReducedWordReplay(t *testing.T) {
	words := map[string][]int{
		"A4": {0, 1, 2, 3, 1, 0, 2},
		"B3": {0, 1, 0, 2, 1},
		"D5": {0, 1, 2, 3, 4, 2, 0, 1},
		"E6": {5, 2, 1, 3, 0, 4, 2, 5},
		"F4": {0, 1, 2, 1, 3, 2},
		"G2": {1, 0, 1, 0},
	}
	for name, word := range words {
		sys := lookup(t, name)
		X := fromWord(t, sys, word...)
		reduced := X.ReducedWord()
		require.Len(t, reduced, X.Length(), name)

		Y := fromWord(t, sys, reduced...)
		require.True(t, X.Equals(Y), name)
		require.Equal(t, X.OneLine(), Y.OneLine(), name)
		require.Equal(t, X.Length(), Y.Length(), name)
	}
}

func TestA3Element(t *testing.T) {
	X := fromWord(t, lookup(t, "A3"), 0, 1, 2)
	require.Equal(t, []int{1, 1, -3}, X.State())
	require.Equal(t, []int{2, 3, 4, 1}, X.OneLine())
	require.Equal(t, 3, X.Length())
	require.Equal(t, gocox.Word{0, 1, 2}, X.ReducedWord())
	require.Equal(t, "[ 1 1 -3 ] { 2 3 4 1 } ( 0 1 2 )", X.String())
}

func TestG2Longest(t *testing.T) {
	X := fromWord(t, lookup(t, "G2"), 0, 1, 0, 1, 0, 1)
	require.Equal(t, 6, X.Length())
	require.Equal(t, []int{-1, -1}, X.State())
	require.Equal(t, gocox.Word{1, 0, 1, 0, 1, 0}, X.ReducedWord())

	// every generator is a descent of the longest element
	for s := 0; s < 2; s++ {
		Y := X.Clone()
		require.NoError(t, Y.RightMultiply(s))
		require.Equal(t, 5, Y.Length())
	}
}

func TestLeftMultiply(t *testing.T) {
	A3 := lookup(t, "A3")
	X := fromWord(t, A3, 0, 1, 2)
	require.NoError(t, X.LeftMultiply(2))
	require.Equal(t, []int{2, -1, -2}, X.State())
	require.Equal(t, []int{2, 4, 3, 1}, X.OneLine())
	require.Equal(t, 4, X.Length())
	require.True(t, X.Equals(fromWord(t, A3, 2, 0, 1, 2)))

	// left multiplying by a left descent shortens
	require.NoError(t, X.LeftMultiply(2))
	require.Equal(t, 3, X.Length())
	require.True(t, X.Equals(fromWord(t, A3, 0, 1, 2)))

	D5 := lookup(t, "D5")
	word := []int{0, 2, 1, 3, 2, 4}
	Y := fromWord(t, D5, word[1:]...)
	require.NoError(t, Y.LeftMultiply(word[0]))
	require.True(t, Y.Equals(fromWord(t, D5, word...)))
	require.Equal(t, 6, Y.Length())

	require.ErrorIs(t, Y.LeftMultiply(5), gocox.ErrBadGenerator)
}

func TestNewFromState(t *testing.T) {
	D4 := lookup(t, "D4")
	X := fromWord(t, D4, 0, 1, 2)
	require.Equal(t, []int{2, 2, -3, 4}, X.State())
	require.Equal(t, []int{-1, 3, -2, 4, 5}, X.OneLine())

	Y, err := libcox.NewFromState(D4, X.State(), X.OneLine())
	require.NoError(t, err)
	require.Equal(t, 3, Y.Length())
	require.True(t, X.Equals(Y))

	_, err = libcox.NewFromState(D4, []int{1, 1}, X.OneLine())
	require.ErrorIs(t, err, gocox.ErrSizeMismatch)

	_, err = libcox.NewFromWord(D4, gocox.Word{0, 4})
	require.ErrorIs(t, err, gocox.ErrBadGenerator)
}

func TestNewFromStateRejects(t *testing.T) {
	A2 := lookup(t, "A2")
	_, err := libcox.NewFromState(A2, []int{0, 1}, []int{1, 2, 3})
	require.ErrorIs(t, err, gocox.ErrBadState)

	// [1, -2] descends by s1 to [-1, 2], then by s0 to [1, 1].
	X, err := libcox.NewFromState(A2, []int{1, -2}, []int{2, 3, 1})
	require.NoError(t, err)
	require.Equal(t, 2, X.Length())
	require.Equal(t, gocox.Word{0, 1}, X.ReducedWord())

	// Each descent on the infinite dihedral group grows the state instead of reaching the identity.
	inf, err := libcox.NewSystem("Inf2", libcox.KindStandard, [][]int{
		{0, gocox.Infinity},
		{gocox.Infinity, 0},
	}, nil)
	require.NoError(t, err)

	_, err = libcox.NewFromState(inf, []int{-1, 0}, []int{1, 2, 3})
	require.ErrorIs(t, err, gocox.ErrBadState)
	_, err = libcox.NewFromState(inf, []int{-1, -1}, []int{1, 2, 3})
	require.ErrorIs(t, err, gocox.ErrBadState)

	W := fromWord(t, inf, 0, 1, 0)
	require.Equal(t, []int{-5, 7}, W.State())
	Y, err := libcox.NewFromState(inf, W.State(), W.OneLine())
	require.NoError(t, err)
	require.Equal(t, 3, Y.Length())
	require.Equal(t, gocox.Word{0, 1, 0}, Y.ReducedWord())
}

func TestReducedExpressionBuffer(t *testing.T) {
	X := fromWord(t, lookup(t, "A3"), 0, 1, 2)
	_, err := X.ReducedExpression(make([]int, 2))
	require.ErrorIs(t, err, gocox.ErrShortBuffer)

	buf := make([]int, 8)
	reduced, err := X.ReducedExpression(buf)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, reduced)
}

func TestOneLinePatterns(t *testing.T) {
	A2 := lookup(t, "A2")
	D5 := lookup(t, "D5")

	id := libcox.NewIdentity(D5)
	require.True(t, id.ContainsOneLinePattern(libcox.NewIdentity(A2)))
	require.False(t, id.ContainsOneLinePattern(fromWord(t, A2, 0)))

	// { 2 3 4 1 } contains { 2 1 } via the subsequence 2 1
	X := fromWord(t, lookup(t, "A3"), 0, 1, 2)
	require.True(t, X.ContainsOneLinePattern(fromWord(t, A2, 0)))

	D8pattern, err := systems.ExcludedD8Pattern(gReg)
	require.NoError(t, err)
	require.True(t, D8pattern.ContainsOneLinePattern(D8pattern))
	require.False(t, fromWord(t, lookup(t, "D8"), 0, 1).ContainsOneLinePattern(D8pattern))
}

func TestWriteHeap(t *testing.T) {
	X := fromWord(t, lookup(t, "A3"), 0, 1, 2)
	buf := bytes.Buffer{}
	X.WriteHeap(&buf)
	require.Equal(t, "    *\n  *\n*\n", buf.String())

	buf.Reset()
	X.WriteAsString(&buf, gocox.PrintOpts{Label: "w", Word: true})
	require.Equal(t, "w ( 0 1 2 )", buf.String())
}
