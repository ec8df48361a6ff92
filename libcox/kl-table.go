package libcox

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/fine-structures/coxeter/gocox"
)

// Polynomial is a polynomial in q with non-negative integer coefficients.
type Polynomial struct {
	Coeffs []int // Coeffs[d] is the coefficient of q^d
}

// AddMonomial adds q^degree to this polynomial.
func (P *Polynomial) AddMonomial(degree int) {
	for len(P.Coeffs) <= degree {
		P.Coeffs = append(P.Coeffs, 0)
	}
	P.Coeffs[degree]++
}

// Coeff returns the coefficient of q^degree.
func (P *Polynomial) Coeff(degree int) int {
	if degree < 0 || degree >= len(P.Coeffs) {
		return 0
	}
	return P.Coeffs[degree]
}

// Degree returns the highest degree with a non-zero coefficient, or -1 for the zero polynomial.
func (P *Polynomial) Degree() int {
	for d := len(P.Coeffs) - 1; d >= 0; d-- {
		if P.Coeffs[d] != 0 {
			return d
		}
	}
	return -1
}

// MonomialString returns "1", "q", or "q^d".
func MonomialString(degree int) string {
	switch degree {
	case 0:
		return "1"
	case 1:
		return "q"
	}
	return "q^" + strconv.Itoa(degree)
}

// String returns terms in increasing degree, e.g. "1 + 2.q + q^3".
func (P *Polynomial) String() string {
	str := strings.Builder{}
	for d, c := range P.Coeffs {
		if c == 0 {
			continue
		}
		if str.Len() > 0 {
			str.WriteString(" + ")
		}
		if c != 1 {
			str.WriteString(strconv.Itoa(c))
			str.WriteByte('.')
		}
		str.WriteString(MonomialString(d))
	}
	if str.Len() == 0 {
		return "0"
	}
	return str.String()
}

// KLTable maps sub-elements x (by reduced word) to P(w,x), iterated in lex order of the reduced word text.
type KLTable struct {
	tree redblacktree.Tree
}

type klEntry struct {
	X gocox.Word
	P Polynomial
}

// NewKLTable returns an empty KLTable.
func NewKLTable() *KLTable {
	return &KLTable{
		tree: redblacktree.Tree{
			Comparator: utils.StringComparator,
		},
	}
}

// Add adds q^degree to the polynomial for x.
func (kl *KLTable) Add(x gocox.Word, degree int) {
	key := x.String()
	val, found := kl.tree.Get(key)
	if !found {
		entry := &klEntry{
			X: append(gocox.Word{}, x...),
		}
		kl.tree.Put(key, entry)
		val = entry
	}
	val.(*klEntry).P.AddMonomial(degree)
}

// Get returns the polynomial for x.
func (kl *KLTable) Get(x gocox.Word) (*Polynomial, bool) {
	return kl.GetByKey(x.String())
}

// GetByKey returns the polynomial for the sub-element whose reduced word text is key.
func (kl *KLTable) GetByKey(key string) (*Polynomial, bool) {
	val, found := kl.tree.Get(key)
	if !found {
		return nil, false
	}
	return &val.(*klEntry).P, true
}

// Len returns the number of sub-elements in this table.
func (kl *KLTable) Len() int {
	return kl.tree.Size()
}

// Each calls fn for each sub-element in lex order of its reduced word text.
func (kl *KLTable) Each(fn func(x gocox.Word, P *Polynomial)) {
	itr := kl.tree.Iterator()
	for itr.Next() {
		entry := itr.Value().(*klEntry)
		fn(entry.X, &entry.P)
	}
}
