package gocox

import (
	"context"
	"strconv"
	"strings"
)

const (

	// Infinity is the bond value denoting m(i,j) = ∞.
	Infinity = -1

	// MaxGenerators is the largest Coxeter system rank supported.
	// One-line subsets are walked as bit sets over Size()+1 positions, so this must stay below 63.
	MaxGenerators = 30
)

// IsSupportedBond returns true if m is a Coxeter bond value the numbers game can act with.
func IsSupportedBond(m int) bool {
	switch m {
	case 0, 2, 3, 4, 6, Infinity:
		return true
	}
	return false
}

// Word is a sequence of generator indices (a Coxeter word).
type Word []int

// String returns the canonical text form of a word, e.g. "(0 1 2)".
// The empty word (the identity) is "()".
func (w Word) String() string {
	var buf [64]byte
	return string(w.AppendTo(buf[:0]))
}

// AppendTo appends the canonical text form of this word to buf.
func (w Word) AppendTo(buf []byte) []byte {
	buf = append(buf, '(')
	for i, si := range w {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(si), 10)
	}
	return append(buf, ')')
}

// Rank returns the number of distinct generators appearing in this word.
func (w Word) Rank() int {
	var seen uint64
	rank := 0
	for _, si := range w {
		bit := uint64(1) << uint(si)
		if seen&bit == 0 {
			seen |= bit
			rank++
		}
	}
	return rank
}

// Reversed returns a new Word with the letters of w in reverse order.
func (w Word) Reversed() Word {
	N := len(w)
	rev := make(Word, N)
	for i, si := range w {
		rev[N-1-i] = si
	}
	return rev
}

// Verdict is how the weak-order enumeration classified an element.
type Verdict int32

const (
	// VerdictDeodhar: the element passed the Deodhar test and was extended.
	VerdictDeodhar Verdict = iota

	// VerdictMinimal: the element failed and was recorded as a new minimal non-Deodhar pattern.
	VerdictMinimal

	// VerdictExcludedPattern: the element failed but contains the known excluded one-line pattern.
	VerdictExcludedPattern

	// VerdictForbidden: the element lies in the upward closure of a known pattern and was not evaluated.
	VerdictForbidden
)

var verdictNames = []string{
	"deodhar",
	"minimal",
	"excluded-pattern",
	"forbidden",
}

func (v Verdict) String() string {
	if int(v) < len(verdictNames) {
		return verdictNames[v]
	}
	return "Verdict(" + strconv.Itoa(int(v)) + ")"
}

// IsDeodhar returns true if this verdict denotes a Deodhar element.
func (v Verdict) IsDeodhar() bool {
	return v == VerdictDeodhar
}

// ElementInfo is passed to EnumOpts.OnElement for each classified element.
type ElementInfo struct {
	Word    Word    // reduced word of the element
	Length  int     // Coxeter length
	Verdict Verdict // how the element was classified
}

// SetBackend selects the StateSet implementation backing the visited and forbidden sets.
type SetBackend int32

const (
	// SetInMemory is a hash set over pooled key buffers.
	SetInMemory SetBackend = iota

	// SetLSM is an in-memory badger LSM store.
	SetLSM
)

func (b SetBackend) String() string {
	switch b {
	case SetInMemory:
		return "mem"
	case SetLSM:
		return "lsm"
	}
	return "SetBackend(" + strconv.Itoa(int(b)) + ")"
}

// ParseSetBackend maps "mem" or "lsm" to a SetBackend.
func ParseSetBackend(name string) (SetBackend, bool) {
	switch strings.ToLower(name) {
	case "mem", "memory", "":
		return SetInMemory, true
	case "lsm", "badger":
		return SetLSM, true
	}
	return SetInMemory, false
}

// EvalOpts sets params for evaluating the Deodhar property of a single element.
type EvalOpts struct {
	StrictBound bool // If set, a proper mask with statistic 0 also fails (statistic <= 0)
	AllMasks    bool // If set, all masks are evaluated rather than stopping at the first failing mask
	RecordMasks bool // If set, a MaskReport is recorded for every mask evaluated
	MuOnly      bool // If set, only mu masks are recorded (implies RecordMasks)
	Target      Word // If non-nil, mask reports and the KL lookup are restricted to this sub-element
}

// DefaultEvalOpts is the fail-fast evaluation used by the weak-order enumeration.
var DefaultEvalOpts = EvalOpts{}

// EnumOpts sets params for a weak-order enumeration.
type EnumOpts struct {
	MaxLength   int               // If > 0, the traversal stops at the first dequeued element longer than this
	Backend     SetBackend        // StateSet backend for the visited and forbidden sets
	StrictBound bool              // See EvalOpts.StrictBound
	OnElement   func(ElementInfo) // If set, called for each classified element
	Context     context.Context   // If set, checked at each dequeue
}

// DefaultEnumOpts enumerates to exhaustion using the in-memory set backend.
var DefaultEnumOpts = EnumOpts{
	Backend: SetInMemory,
}

// MaskReport describes the evaluation of one subword mask.
type MaskReport struct {
	Mask      string // rendering such as "( 0 1d1 )" where 'd' marks a defect position
	Sub       Word   // reduced word of the masked sub-element t
	Defects   int    // defect count
	Statistic int    // (L - len(t)) - 2*Defects
	Mu        bool   // Statistic == 1
	Failing   bool   // proper mask below the Deodhar bound
}

// MuViolation records a mu coefficient outside {0,1}.
type MuViolation struct {
	W  Word // element being evaluated
	X  Word // sub-element whose mu count exceeded 1
	Mu int
}

// PatternViolation records a Deodhar element containing the excluded one-line pattern.
type PatternViolation struct {
	W       Word
	OneLine []int
}

// PrintOpts specifies what is printed when printing an element.
type PrintOpts struct {
	Label   string // Prefix label
	State   bool   // If set, prints the numbers game state vector
	OneLine bool   // If set, prints the one-line notation
	Word    bool   // If set, prints the reduced word
	Heap    bool   // If set, prints the heap diagram of the reduced word
}

// DefaultPrintOpts prints state, one-line and reduced word on one line.
var DefaultPrintOpts = PrintOpts{
	State:   true,
	OneLine: true,
	Word:    true,
}
