package libcox_test

import (
	"context"
	"testing"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/fine-structures/coxeter/libcox"
	"github.com/fine-structures/coxeter/libcox/systems"
	"github.com/stretchr/testify/require"
)

func census(t *testing.T, name string, opts gocox.EnumOpts) *libcox.Census {
	D8pattern, err := systems.ExcludedD8Pattern(gReg)
	require.NoError(t, err)

	result, err := libcox.Enumerate(lookup(t, name), opts, D8pattern)
	require.NoError(t, err)
	require.True(t, result.Consistent(), name)
	return result
}

func TestCensusAllDeodhar(t *testing.T) {
	expected := map[string]int{
		"G2": 5,
		"A2": 5,
		"A3": 14,
		"A4": 42,
		"B3": 14,
		"D4": 48,
		"F4": 42,
	}
	for name, count := range expected {
		for _, strict := range []bool{false, true} {
			result := census(t, name, gocox.EnumOpts{StrictBound: strict})
			require.Equal(t, count, result.Processed, name)
			require.Equal(t, count, result.Deodhar, name)
			require.Zero(t, result.NonDeodhar, name)
			require.Zero(t, result.ForbiddenCount, name)
			require.Empty(t, result.Patterns, name)
			require.Empty(t, result.PatternViolations, name)
			require.False(t, result.Truncated, name)
		}
	}
}

func TestCensusD6Strict(t *testing.T) {
	result := census(t, "D6", gocox.EnumOpts{StrictBound: true})
	require.Equal(t, 581, result.Processed)
	require.Equal(t, 575, result.Deodhar)
	require.Equal(t, 6, result.NonDeodhar)
	require.Equal(t, 18, result.ForbiddenCount)
	require.Len(t, result.Patterns, 1)
	require.Empty(t, result.Covered)

	pattern := result.Patterns[0]
	require.Equal(t, gocox.Word{3, 4, 5, 0, 2, 3, 4, 1, 2, 3, 0}, pattern.Word)
	require.Equal(t, 6, pattern.Rank)
	require.Equal(t, 11, pattern.Element.Length())

	// the forbidden set holds every short-braid-avoiding element not found Deodhar
	require.Equal(t, 593, result.Deodhar+result.ForbiddenCount)

	result = census(t, "D6", gocox.DefaultEnumOpts)
	require.Equal(t, 593, result.Processed)
	require.Equal(t, 593, result.Deodhar)
}

func TestCensusE6(t *testing.T) {
	result := census(t, "E6", gocox.DefaultEnumOpts)
	require.Equal(t, 662, result.Processed)
	require.Equal(t, 660, result.Deodhar)
	require.Equal(t, 2, result.NonDeodhar)
	require.Equal(t, 2, result.ForbiddenCount)
	require.Len(t, result.Patterns, 1)
	require.Equal(t, gocox.Word{0, 1, 2, 5, 3, 4, 2, 3, 1, 2, 5, 0, 1, 2, 3, 4}, result.Patterns[0].Word)
}

func TestCensusBackends(t *testing.T) {
	mem := census(t, "D5", gocox.EnumOpts{Backend: gocox.SetInMemory})
	lsm := census(t, "D5", gocox.EnumOpts{Backend: gocox.SetLSM})
	require.Equal(t, 167, mem.Deodhar)
	require.Equal(t, mem.Processed, lsm.Processed)
	require.Equal(t, mem.Deodhar, lsm.Deodhar)
	require.Equal(t, mem.ForbiddenCount, lsm.ForbiddenCount)
	require.Equal(t, mem.MaxLength, lsm.MaxLength)
}

func TestCensusMaxLength(t *testing.T) {
	result := census(t, "A3", gocox.EnumOpts{MaxLength: 2})
	require.True(t, result.Truncated)
	require.Equal(t, 9, result.Processed)
	require.Equal(t, 2, result.MaxLength)

	result = census(t, "A4", gocox.EnumOpts{MaxLength: 3})
	require.True(t, result.Truncated)
	require.Equal(t, 26, result.Processed)
}

func TestCensusOnElement(t *testing.T) {
	var infos []gocox.ElementInfo
	opts := gocox.EnumOpts{
		StrictBound: true,
		OnElement: func(info gocox.ElementInfo) {
			infos = append(infos, info)
		},
	}
	result := census(t, "D6", opts)
	require.Len(t, infos, result.Processed)

	counts := make(map[gocox.Verdict]int)
	prevLen := 0
	for _, info := range infos {
		counts[info.Verdict]++
		require.Len(t, info.Word, info.Length)
		require.GreaterOrEqual(t, info.Length, prevLen)
		prevLen = info.Length
	}
	require.Equal(t, 575, counts[gocox.VerdictDeodhar])
	require.Equal(t, 1, counts[gocox.VerdictMinimal])
	require.Equal(t, 5, counts[gocox.VerdictForbidden])
	require.Zero(t, counts[gocox.VerdictExcludedPattern])
}

func TestCensusCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := libcox.Enumerate(lookup(t, "A5"), gocox.EnumOpts{Context: ctx})
	require.ErrorIs(t, err, context.Canceled)
}
