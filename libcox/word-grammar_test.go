package libcox

import (
	"testing"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/stretchr/testify/require"
)

func TestParseWord(t *testing.T) {
	tests := []struct {
		expr string
		want gocox.Word
	}{
		{"", gocox.Word{}},
		{"  ", gocox.Word{}},
		{"()", gocox.Word{}},
		{"0 1 2", gocox.Word{0, 1, 2}},
		{"0,1,2", gocox.Word{0, 1, 2}},
		{"(0 1 2)", gocox.Word{0, 1, 2}},
		{"( 0, 1, 2 )", gocox.Word{0, 1, 2}},
		{"s0 s1 s2", gocox.Word{0, 1, 2}},
		{"S3 s10", gocox.Word{3, 10}},
		{"1021", gocox.Word{1, 0, 2, 1}},
		{"7", gocox.Word{7}},
		{"12 3", gocox.Word{12, 3}},
		{"s12", gocox.Word{12}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			word, err := ParseWord(tt.expr)
			require.NoError(t, err)
			require.Equal(t, tt.want, word)
		})
	}
}

func TestParseWordErrors(t *testing.T) {
	for _, expr := range []string{"0 x 1", "s", "-1", "0 1 (", "(0 1", "0 1)", ")", "((0))"} {
		_, err := ParseWord(expr)
		require.ErrorIs(t, err, gocox.ErrBadWord, expr)
	}
}

func TestParseWordFor(t *testing.T) {
	A3 := mustSystem(t, "A3", KindStandard, chainBonds(3), nil)

	word, err := ParseWordFor(A3, "0 1 2")
	require.NoError(t, err)
	require.Equal(t, gocox.Word{0, 1, 2}, word)

	_, err = ParseWordFor(A3, "0 3")
	require.ErrorIs(t, err, gocox.ErrBadGenerator)
}
