package libcox

import (
	"github.com/fine-structures/coxeter/gocox"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// MinimalPattern is a non-Deodhar element whose every short-braid-avoiding predecessor is Deodhar.
type MinimalPattern struct {
	Element *Element
	Word    gocox.Word
	Rank    int
}

// Census is the outcome of a weak-order enumeration of one Coxeter system.
type Census struct {
	System            *System
	Processed         int              // distinct short-braid-avoiding elements dequeued
	Deodhar           int              // elements that passed the Deodhar test
	NonDeodhar        int              // elements that failed, or that lie above a known pattern
	Patterns          []MinimalPattern // new minimal non-Deodhar patterns, in discovery order
	Covered           []gocox.Word     // failing elements that contain an excluded one-line pattern
	ForbiddenCount    int              // size of the upward closure of all patterns found
	MuViolations      []gocox.MuViolation
	PatternViolations []gocox.PatternViolation
	MaxLength         int  // longest element dequeued
	Truncated         bool // set if EnumOpts.MaxLength stopped the traversal
}

// Consistent returns true if every processed element was classified exactly once.
func (census *Census) Consistent() bool {
	return census.Processed == census.Deodhar+census.NonDeodhar
}

type enumerator struct {
	sys       *System
	opts      gocox.EnumOpts
	evalOpts  gocox.EvalOpts
	excluded  []*Element
	visited   StateSet
	forbidden StateSet
	census    *Census
	keyBuf    gocox.StateKeyBuf
}

// Enumerate walks the short-braid-avoiding elements of sys breadth-first from the identity,
// classifying each as Deodhar or not.
//
// Deodhar elements are extended on the right by every ascent i for which, after the last
// occurrence of i in the reduced word, at least two letters do not commute with i (or i does
// not occur).  A failing element is not extended; its upward closure in the two-sided
// short-braid-avoiding weak order, together with the closures of its automorphic images, is
// added to the forbidden set and is then classified without evaluation.
//
// Each excluded pattern applies when sys contains the pattern's own system as a leading
// sub-diagram: failing elements containing it are not recorded as new minimal patterns, and
// Deodhar elements containing it are reported as PatternViolations.
func Enumerate(sys *System, opts gocox.EnumOpts, excluded ...*Element) (*Census, error) {
	en := &enumerator{
		sys:  sys,
		opts: opts,
		evalOpts: gocox.EvalOpts{
			StrictBound: opts.StrictBound,
		},
		visited:   NewStateSet(opts.Backend),
		forbidden: NewStateSet(opts.Backend),
		census: &Census{
			System: sys,
		},
	}
	defer en.visited.Close()
	defer en.forbidden.Close()

	for _, pattern := range excluded {
		if pattern != nil && sys.Contains(pattern.sys) {
			en.excluded = append(en.excluded, pattern)
		}
	}

	err := en.run()
	en.census.ForbiddenCount = en.forbidden.Len()
	if err != nil {
		return en.census, err
	}

	klog.V(1).Infof("%s: found %d Deodhar elements (out of %d short-braid-avoiding elements processed, %d forbidden)",
		sys.Name, en.census.Deodhar, en.census.Processed, en.census.ForbiddenCount)
	return en.census, nil
}

func (en *enumerator) run() error {
	sys := en.sys
	census := en.census
	ctx := en.opts.Context

	queue := []*Element{NewIdentity(sys)}
	curLen := -1

	for head := 0; head < len(queue); head++ {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "%s: enumeration stopped", sys.Name)
			}
		}

		X := queue[head]
		queue[head] = nil

		if en.opts.MaxLength > 0 && X.length > en.opts.MaxLength {
			census.Truncated = true
			return nil
		}
		if X.length > curLen {
			curLen = X.length
			census.MaxLength = curLen
			klog.V(1).Infof("%s: evaluating length %d elements, with %d elements left to process", sys.Name, curLen, len(queue)-head-1)
		}

		key := X.Key(en.keyBuf[:0])
		if !en.visited.TryAdd(key) {
			continue
		}
		census.Processed++

		if en.forbidden.Has(key) {
			census.NonDeodhar++
			en.emit(X, nil, gocox.VerdictForbidden)
			continue
		}

		ev, err := Evaluate(X, en.evalOpts)
		if err != nil {
			return err
		}

		if ev.Deodhar {
			census.Deodhar++
			en.checkDeodhar(X, ev)
			en.emit(X, ev.Word, gocox.VerdictDeodhar)

			for i := 0; i < sys.size; i++ {
				if en.rightExtendable(X, ev.Word, i) {
					Y := X.Clone()
					if err = Y.RightMultiply(i); err != nil {
						return err
					}
					queue = append(queue, Y)
				}
			}
			continue
		}

		census.NonDeodhar++
		verdict := gocox.VerdictMinimal
		if en.containsExcluded(X) {
			verdict = gocox.VerdictExcludedPattern
			census.Covered = append(census.Covered, ev.Word)
			klog.V(2).Infof("%s: excluded 1-line pattern found in %v of rank %d", sys.Name, X, ev.Word.Rank())
		} else {
			census.Patterns = append(census.Patterns, MinimalPattern{
				Element: X,
				Word:    ev.Word,
				Rank:    ev.Word.Rank(),
			})
			klog.V(2).Infof("%s: found minimal pattern of rank %d: %v", sys.Name, ev.Word.Rank(), X)
		}

		if err = en.forbidUpIdeal(X); err != nil {
			return err
		}
		for k := 0; k < sys.NumAutomorphisms(); k++ {
			image := NewIdentity(sys)
			for _, ri := range ev.Word {
				if err = image.RightMultiply(sys.Automorphism(k, ri)); err != nil {
					return err
				}
			}
			if err = en.forbidUpIdeal(image); err != nil {
				return err
			}
		}
		en.emit(X, ev.Word, verdict)
	}

	return nil
}

func (en *enumerator) emit(X *Element, word gocox.Word, verdict gocox.Verdict) {
	if en.opts.OnElement == nil {
		return
	}
	if word == nil {
		word = X.ReducedWord()
	}
	en.opts.OnElement(gocox.ElementInfo{
		Word:    word,
		Length:  X.length,
		Verdict: verdict,
	})
}

// checkDeodhar records the findings for a Deodhar element.
func (en *enumerator) checkDeodhar(X *Element, ev *Evaluation) {
	census := en.census
	for _, mv := range ev.MuViolations {
		klog.Warningf("%s: found mu value %d outside {0,1} for w = %v, x = %v", en.sys.Name, mv.Mu, mv.W, mv.X)
		census.MuViolations = append(census.MuViolations, mv)
	}
	if en.containsExcluded(X) {
		klog.Warningf("%s: Deodhar element %v contains an excluded 1-line pattern", en.sys.Name, X)
		census.PatternViolations = append(census.PatternViolations, gocox.PatternViolation{
			W:       ev.Word,
			OneLine: append([]int{}, X.oneLine...),
		})
	}
}

func (en *enumerator) containsExcluded(X *Element) bool {
	for _, pattern := range en.excluded {
		if X.ContainsOneLinePattern(pattern) {
			return true
		}
	}
	return false
}

// nonCommuting returns true if generators i and j do not commute.
func (en *enumerator) nonCommuting(i, j int) bool {
	m := en.sys.BondStrength(i, j)
	return m >= 3 || m == gocox.Infinity
}

// rightExtendable returns true if X·i is longer than X and stays short-braid-avoiding.
func (en *enumerator) rightExtendable(X *Element, reduced gocox.Word, i int) bool {
	if !X.HasRightAscent(i) {
		return false
	}
	k := len(reduced) - 1
	for ; k >= 0; k-- {
		if reduced[k] == i {
			break
		}
	}
	if k < 0 {
		return true
	}
	nonComms := 0
	for m := k + 1; m < len(reduced); m++ {
		if en.nonCommuting(i, reduced[m]) {
			nonComms++
		}
	}
	return nonComms >= 2
}

// leftExtendable returns true if i·X stays short-braid-avoiding (the caller checks that it is longer).
func (en *enumerator) leftExtendable(reduced gocox.Word, i int) bool {
	k := 0
	for ; k < len(reduced); k++ {
		if reduced[k] == i {
			break
		}
	}
	if k == len(reduced) {
		return true
	}
	nonComms := 0
	for m := k - 1; m >= 0; m-- {
		if en.nonCommuting(i, reduced[m]) {
			nonComms++
		}
	}
	return nonComms >= 2
}

// forbidUpIdeal adds seed and every element above it in the two-sided short-braid-avoiding weak order to the forbidden set.
func (en *enumerator) forbidUpIdeal(seed *Element) error {
	n := en.sys.size
	queue := []*Element{seed.Clone()}
	var keyBuf gocox.StateKeyBuf

	for head := 0; head < len(queue); head++ {
		X := queue[head]
		queue[head] = nil

		if en.opts.MaxLength > 0 && X.length > en.opts.MaxLength {
			break
		}
		if !en.forbidden.TryAdd(X.Key(keyBuf[:0])) {
			continue
		}

		reduced := X.ReducedWord()
		for i := 0; i < n; i++ {
			if en.rightExtendable(X, reduced, i) {
				Y := X.Clone()
				if err := Y.RightMultiply(i); err != nil {
					return err
				}
				queue = append(queue, Y)
			}
		}
		for i := 0; i < n; i++ {
			if en.leftExtendable(reduced, i) {
				Y := X.Clone()
				if err := Y.LeftMultiply(i); err != nil {
					return err
				}
				if Y.length > X.length {
					queue = append(queue, Y)
				}
			}
		}
	}
	return nil
}
