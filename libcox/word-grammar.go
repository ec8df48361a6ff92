package libcox

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fine-structures/coxeter/gocox"
	"github.com/pkg/errors"
)

// WordExpr is a generator word such as "0 1 2", "0,1,2", "(0 1 2)", "s0 s1 s2", or the compact "1021".
type WordExpr struct {
	Letters []*Letter `"(" (@@ ","?)* ")" | (@@ ","?)*`
}

// Letter is one generator: "3" or "s3".
type Letter struct {
	Text string `@(Gen | Int)`
}

var sWordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Gen", `[sS][0-9]+`},
	{"Int", `[0-9]+`},
	{"Punct", `[(),]`},
	{"whitespace", `[ \t\r\n]+`},
})

var sParseWordExpr = participle.MustBuild[WordExpr](
	participle.Lexer(sWordLexer),
)

// ParseWord parses a generator word.
//
// A lone run of two or more digits is read one generator per digit ("1021" is s1 s0 s2 s1).
// Use spaces, commas, or the "s" prefix for generators above 9.  An empty expression or "()" is the identity.
func ParseWord(expr string) (gocox.Word, error) {
	if strings.TrimSpace(expr) == "" {
		return gocox.Word{}, nil
	}

	wordExpr, err := sParseWordExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(gocox.ErrBadWord, "%q: %v", expr, err)
	}

	letters := wordExpr.Letters
	if len(letters) == 1 && len(letters[0].Text) > 1 && letters[0].Text[0] != 's' && letters[0].Text[0] != 'S' {
		digits := letters[0].Text
		word := make(gocox.Word, len(digits))
		for i := range digits {
			word[i] = int(digits[i] - '0')
		}
		return word, nil
	}

	word := make(gocox.Word, 0, len(letters))
	for _, letter := range letters {
		text := strings.TrimLeft(letter.Text, "sS")
		si, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.Wrapf(gocox.ErrBadWord, "%q: %v", expr, err)
		}
		word = append(word, si)
	}
	return word, nil
}

// ParseWordFor parses a generator word and checks that each letter is a generator of sys.
func ParseWordFor(sys *System, expr string) (gocox.Word, error) {
	word, err := ParseWord(expr)
	if err != nil {
		return nil, err
	}
	for _, si := range word {
		if si < 0 || si >= sys.size {
			return nil, errors.Wrapf(gocox.ErrBadGenerator, "%s has no generator %d (in %q)", sys.Name, si, expr)
		}
	}
	return word, nil
}
