package libcox

import (
	"bytes"
	"io"
	"strconv"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/pkg/errors"
)

// Element is an element of a Coxeter group held under three synchronized encodings:
//   - state: the numbers game vector (state[i] < 0 iff i is a right descent)
//   - oneLine: the one-line notation (meaningful for type A and D systems)
//   - length: the Coxeter length
//
// All three are updated together on every multiplication.
type Element struct {
	sys     *System
	state   []int
	oneLine []int
	length  int
}

// NewIdentity returns the identity element of sys.
func NewIdentity(sys *System) *Element {
	n := sys.size
	buf := make([]int, 2*n+1)
	X := &Element{
		sys:     sys,
		state:   buf[:n:n],
		oneLine: buf[n:],
	}
	X.setIdentity()
	return X
}

func (X *Element) setIdentity() {
	for i := range X.state {
		X.state[i] = 1
	}
	for i := range X.oneLine {
		X.oneLine[i] = i + 1
	}
	X.length = 0
}

const (
	// MaxDescentSteps bounds how many greedy descent steps NewFromState takes before rejecting a state.
	MaxDescentSteps = 1 << 14

	// maxStateEntry bounds the magnitude of state entries seen while descending.
	maxStateEntry = 1 << 28
)

// NewFromState returns the element with the given state vector and one-line notation.
// The length is recomputed by reduced word extraction.
//
// A state with a zero entry, or one that does not descend to the identity within
// MaxDescentSteps steps, returns gocox.ErrBadState.  The one-line notation is taken as given.
func NewFromState(sys *System, state, oneLine []int) (*Element, error) {
	n := sys.size
	if len(state) != n || len(oneLine) != n+1 {
		return nil, errors.Wrapf(gocox.ErrSizeMismatch, "%s: state has %d entries, one-line has %d", sys.Name, len(state), len(oneLine))
	}
	for i, Si := range state {
		if Si == 0 {
			return nil, errors.Wrapf(gocox.ErrBadState, "%s: state[%d] is 0 in %v", sys.Name, i, state)
		}
	}
	X := NewIdentity(sys)
	copy(X.state, state)
	copy(X.oneLine, oneLine)

	length, err := X.countDescentSteps()
	if err != nil {
		return nil, err
	}
	X.length = length
	return X, nil
}

// NewFromWord returns the identity right-multiplied by each letter of word in order.
func NewFromWord(sys *System, word gocox.Word) (*Element, error) {
	X := NewIdentity(sys)
	for _, si := range word {
		if si < 0 || si >= sys.size {
			return nil, errors.Wrapf(gocox.ErrBadGenerator, "%s: generator %d in %v", sys.Name, si, word)
		}
		if err := X.RightMultiply(si); err != nil {
			return nil, err
		}
	}
	return X, nil
}

// Clone returns an independent copy of this element.
func (X *Element) Clone() *Element {
	Y := NewIdentity(X.sys)
	Y.CopyFrom(X)
	return Y
}

// CopyFrom sets this element equal to src, which must belong to a system of the same size.
func (X *Element) CopyFrom(src *Element) {
	if len(X.state) != len(src.state) {
		n := src.sys.size
		buf := make([]int, 2*n+1)
		X.state = buf[:n:n]
		X.oneLine = buf[n:]
	}
	X.sys = src.sys
	copy(X.state, src.state)
	copy(X.oneLine, src.oneLine)
	X.length = src.length
}

// System returns the Coxeter system this element belongs to.
func (X *Element) System() *System {
	return X.sys
}

// Length returns the Coxeter length of this element.
func (X *Element) Length() int {
	return X.length
}

// State returns the numbers game state vector.  The caller must not modify it.
func (X *Element) State() []int {
	return X.state
}

// OneLine returns the one-line notation.  The caller must not modify it.
func (X *Element) OneLine() []int {
	return X.oneLine
}

// HasRightDescent returns true if right-multiplying by s would decrease the length.
func (X *Element) HasRightDescent(s int) bool {
	return X.state[s] < 0
}

// HasRightAscent returns true if right-multiplying by s would increase the length.
func (X *Element) HasRightAscent(s int) bool {
	return X.state[s] > 0
}

// RightMultiply sets X to X·s.
//
// Each neighbor i of s gains Amplitude(s,i) times the old state[s], then
// the length moves by one according to the sign of state[s], state[s] is negated, and
// the one-line action of s is applied.  An unsupported bond value returns gocox.ErrBadBond
// and leaves X unchanged.
func (X *Element) RightMultiply(s int) error {
	sys := X.sys
	n := sys.size
	if s < 0 || s >= n {
		return errors.Wrapf(gocox.ErrBadGenerator, "%s: generator %d", sys.Name, s)
	}

	row := sys.bonds[s*n : (s+1)*n]
	for i, m := range row {
		if i != s && !gocox.IsSupportedBond(m) {
			return errors.Wrapf(gocox.ErrBadBond, "%s: m(%d,%d) = %d", sys.Name, s, i, m)
		}
	}

	Ss := X.state[s]
	for i := range row {
		if i != s {
			X.state[i] += sys.Amplitude(s, i) * Ss
		}
	}

	if Ss > 0 {
		X.length++
	} else {
		X.length--
	}
	X.state[s] = -Ss

	sys.ApplyGenerator(X.oneLine, s)
	return nil
}

// LeftMultiply sets X to s·X.
//
// The product is rebuilt from the identity: s, followed by the reduced word of X, counting
// ascents and descents along the way.
func (X *Element) LeftMultiply(s int) error {
	if s < 0 || s >= X.sys.size {
		return errors.Wrapf(gocox.ErrBadGenerator, "%s: generator %d", X.sys.Name, s)
	}

	reduced, err := X.ReducedExpression(nil)
	if err != nil {
		return err
	}

	T := NewIdentity(X.sys)
	if err = T.RightMultiply(s); err != nil {
		return err
	}
	length := 1
	for _, ri := range reduced {
		if T.state[ri] > 0 {
			length++
		} else {
			length--
		}
		if err = T.RightMultiply(ri); err != nil {
			return err
		}
	}

	copy(X.state, T.state)
	copy(X.oneLine, T.oneLine)
	X.length = length
	return nil
}

// countDescentSteps returns how many greedy descent steps bring X back to the identity.
func (X *Element) countDescentSteps() (int, error) {
	T := X.Clone()
	for steps := 0; steps <= MaxDescentSteps; steps++ {
		move := T.firstDescent()
		if move < 0 {
			return steps, nil
		}
		if err := T.RightMultiply(move); err != nil {
			return steps, err
		}
		for i, Ti := range T.state {
			if Ti == 0 || Ti > maxStateEntry || Ti < -maxStateEntry {
				return steps, errors.Wrapf(gocox.ErrBadState, "%s: state[%d] is %d after %d descents", X.sys.Name, i, Ti, steps+1)
			}
		}
	}
	return MaxDescentSteps, errors.Wrapf(gocox.ErrBadState, "%s: %v does not reach the identity within %d descents", X.sys.Name, X.state, MaxDescentSteps)
}

func (X *Element) firstDescent() int {
	for i, Si := range X.state {
		if Si < 0 {
			return i
		}
	}
	return -1
}

// ReducedExpression writes a reduced word for X into dst and returns dst[:Length()].
//
// On a copy of X, the first right descent is repeatedly removed; the letters found are
// written back-to-front.  If dst is nil, a new slice is allocated.
func (X *Element) ReducedExpression(dst []int) ([]int, error) {
	L := X.length
	if dst == nil {
		dst = make([]int, L)
	} else if len(dst) < L {
		return nil, errors.Wrapf(gocox.ErrShortBuffer, "need %d, got %d", L, len(dst))
	}
	reduced := dst[:L]

	T := X.Clone()
	for k := 0; ; k++ {
		move := T.firstDescent()
		if move < 0 {
			break
		}
		if k >= L {
			panic("libcox: element length is out of sync with its state")
		}
		reduced[L-1-k] = move
		if err := T.RightMultiply(move); err != nil {
			return nil, err
		}
	}
	return reduced, nil
}

// ReducedWord returns a newly allocated reduced word for X.
func (X *Element) ReducedWord() gocox.Word {
	reduced, err := X.ReducedExpression(nil)
	if err != nil {
		panic(err)
	}
	return gocox.Word(reduced)
}

// Equals returns true if X and other are the same group element of equally sized systems.
func (X *Element) Equals(other *Element) bool {
	if len(X.state) != len(other.state) {
		return false
	}
	for i, Si := range X.state {
		if other.state[i] != Si {
			return false
		}
	}
	return true
}

// Rank returns the number of distinct generators in the given word.
func (X *Element) Rank(word gocox.Word) int {
	return word.Rank()
}

// Key appends the canonical state key of X to dst.
func (X *Element) Key(dst []byte) gocox.StateKey {
	return gocox.AppendStateKey(dst, X.state)
}

// String returns the default printing of X.
func (X *Element) String() string {
	buf := bytes.Buffer{}
	X.WriteAsString(&buf, gocox.DefaultPrintOpts)
	return buf.String()
}

// WriteAsString prints X as "[ state ] { one-line } ( reduced word )" according to opts.
func (X *Element) WriteAsString(out io.Writer, opts gocox.PrintOpts) {
	var buf []byte
	if len(opts.Label) > 0 {
		buf = append(buf, opts.Label...)
		buf = append(buf, ' ')
	}
	if opts.State {
		buf = appendInts(buf, '[', X.state, ']')
		buf = append(buf, ' ')
	}
	if opts.OneLine {
		buf = appendInts(buf, '{', X.oneLine, '}')
		buf = append(buf, ' ')
	}
	if opts.Word {
		buf = appendInts(buf, '(', X.ReducedWord(), ')')
	}
	out.Write(bytes.TrimRight(buf, " "))

	if opts.Heap {
		out.Write([]byte{'\n'})
		X.WriteHeap(out)
	}
}

func appendInts(buf []byte, open byte, vals []int, close byte) []byte {
	buf = append(buf, open, ' ')
	for _, v := range vals {
		buf = strconv.AppendInt(buf, int64(v), 10)
		buf = append(buf, ' ')
	}
	return append(buf, close)
}

// WriteHeap prints the heap of the reduced word of X, top level first, one column per generator.
func (X *Element) WriteHeap(out io.Writer) {
	reduced := X.ReducedWord()
	n := X.sys.size
	L := len(reduced)

	level := make([]int, L)
	heap := make([]int, n)
	for i, ri := range reduced {
		lv := heap[ri]
		level[i] = lv
		for m := 0; m < n; m++ {
			b := X.sys.BondStrength(m, ri)
			if (m == ri || b >= 3 || b == gocox.Infinity) && heap[m] <= lv {
				heap[m] = lv + 1
			}
		}
	}

	top := -1
	for _, lv := range level {
		if lv > top {
			top = lv
		}
	}

	line := make([]byte, 0, 2*n+1)
	for lv := top; lv >= 0; lv-- {
		line = line[:0]
		for g := 0; g < n; g++ {
			cell := byte(' ')
			for i, ri := range reduced {
				if ri == g && level[i] == lv {
					cell = '*'
					break
				}
			}
			line = append(line, cell, ' ')
		}
		line = append(bytes.TrimRight(line, " "), '\n')
		out.Write(line)
	}
}
