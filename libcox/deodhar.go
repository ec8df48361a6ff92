package libcox

import (
	"sort"

	"github.com/fine-structures/coxeter/gocox"
)

// Evaluation is the outcome of testing one element for the Deodhar property.
type Evaluation struct {
	W            *Element
	Word         gocox.Word          // reduced word of W, the reference word for every mask
	Deodhar      bool                // no proper mask fell below the bound
	FailingMask  string              // first failing proper mask, if any
	Table        *KLTable            // sub-element x -> sum of q^defects over the masks landing on x
	Mu           map[string]int      // mu mask counts keyed by reduced word text of x
	MuViolations []gocox.MuViolation // mu counts above 1, in key order
	Masks        []gocox.MaskReport  // populated when EvalOpts.RecordMasks or EvalOpts.MuOnly is set
	NumMasks     int                 // number of masks evaluated
	TargetKey    string              // reduced word text of EvalOpts.Target, if given
}

// P returns P(w,x) for the target sub-element, or for x if given.
func (ev *Evaluation) P(x gocox.Word) (*Polynomial, bool) {
	if x == nil {
		return ev.Table.GetByKey(ev.TargetKey)
	}
	return ev.Table.Get(x)
}

// Evaluate tests w for the Deodhar property against every subword mask of its reduced word.
//
// For each mask, t is the product of the letters selected by the mask.  A position i < L-1 is a
// defect if, once position i is processed, the next letter is a right descent of the partial t.
// The statistic (L - len(t)) - 2*defects of a proper mask must not drop below the bound
// (statistic < 0 fails, or statistic <= 0 with StrictBound).  Masks with statistic 1 are mu masks.
// Every mask evaluated contributes q^defects to the KL table entry of t.
//
// Unless opts.AllMasks is set, evaluation stops at the first failing mask.
func Evaluate(w *Element, opts gocox.EvalOpts) (*Evaluation, error) {
	sys := w.sys
	reduced, err := w.ReducedExpression(nil)
	if err != nil {
		return nil, err
	}
	L := len(reduced)

	ev := &Evaluation{
		W:       w,
		Word:    gocox.Word(reduced),
		Deodhar: true,
		Table:   NewKLTable(),
		Mu:      make(map[string]int),
	}

	if opts.Target != nil {
		x, err := NewFromWord(sys, opts.Target)
		if err != nil {
			return nil, err
		}
		ev.TargetKey = x.ReducedWord().String()
	}
	recordMasks := opts.RecordMasks || opts.MuOnly

	T := NewIdentity(sys)
	defects := make([]bool, L)
	subBuf := make([]int, L)
	var maskBuf []byte
	muWords := make(map[string]gocox.Word)

	for masks := NewMasks(L); !masks.Exhausted(); masks.Next() {
		T.setIdentity()
		defectCount := 0
		for i := 0; i < L; i++ {
			if masks.Value(i) == 1 {
				if err = T.RightMultiply(reduced[i]); err != nil {
					return nil, err
				}
			}
			if i < L-1 {
				defects[i+1] = T.HasRightDescent(reduced[i+1])
				if defects[i+1] {
					defectCount++
				}
			}
		}
		ev.NumMasks++

		statistic := (L - T.length) - 2*defectCount
		failing := masks.Proper() && (statistic < 0 || (opts.StrictBound && statistic == 0))

		var sub []int
		if sub, err = T.ReducedExpression(subBuf); err != nil {
			return nil, err
		}
		x := gocox.Word(sub)
		key := x.String()

		if failing || recordMasks {
			maskBuf = masks.AppendString(maskBuf[:0], func(pos int) bool { return defects[pos] })
		}

		if recordMasks && (opts.Target == nil || key == ev.TargetKey) && (!opts.MuOnly || statistic == 1) {
			ev.Masks = append(ev.Masks, gocox.MaskReport{
				Mask:      string(maskBuf),
				Sub:       append(gocox.Word{}, x...),
				Defects:   defectCount,
				Statistic: statistic,
				Mu:        statistic == 1,
				Failing:   failing,
			})
		}

		if failing {
			if ev.Deodhar {
				ev.Deodhar = false
				ev.FailingMask = string(maskBuf)
			}
			if !opts.AllMasks {
				break
			}
		}

		if statistic == 1 {
			if ev.Mu[key]++; ev.Mu[key] == 2 {
				muWords[key] = append(gocox.Word{}, x...)
			}
		}
		ev.Table.Add(x, defectCount)
	}

	keys := make([]string, 0, len(muWords))
	for key := range muWords {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ev.MuViolations = append(ev.MuViolations, gocox.MuViolation{
			W:  ev.Word,
			X:  muWords[key],
			Mu: ev.Mu[key],
		})
	}

	return ev, nil
}

// IsDeodhar returns true if w passes the Deodhar test with default options.
func IsDeodhar(w *Element) (bool, error) {
	ev, err := Evaluate(w, gocox.DefaultEvalOpts)
	if err != nil {
		return false, err
	}
	return ev.Deodhar, nil
}
