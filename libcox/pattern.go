package libcox

import (
	"math/bits"

	"github.com/fine-structures/coxeter/gocox"
)

// maxPositions is the longest one-line notation of a supported system.
const maxPositions = gocox.MaxGenerators + 1

// ContainsOneLinePattern returns true if some subsequence of the one-line notation of X
// flattens to the leading entries of the one-line notation of pattern.
//
// With k = pattern.System().Size(), every k-subset of the one-line positions of X is
// considered in increasing bit order.  The selected signed values are flattened to
// ±1..±k, keeping the relative order of their absolute values and their signs, and
// compared with pattern.OneLine()[:k].
func (X *Element) ContainsOneLinePattern(pattern *Element) bool {
	k := pattern.sys.size
	N := len(X.oneLine)
	if k > N {
		return false
	}
	target := pattern.oneLine[:k]

	var (
		picked    [maxPositions]int
		flattened [maxPositions]int
	)

	lo := uint64(1)<<uint(k) - 1
	hi := lo << uint(N-k)
	for subset := lo; subset <= hi; subset++ {
		if bits.OnesCount64(subset) != k {
			continue
		}

		sel := picked[:0]
		for pos := 0; pos < N; pos++ {
			if subset&(1<<uint(pos)) != 0 {
				sel = append(sel, X.oneLine[pos])
			}
		}

		flattenSigned(sel, flattened[:k])

		match := true
		for i, fi := range flattened[:k] {
			if fi != target[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// flattenSigned writes to dst the signed rank (1-based) of each entry's absolute value within src.
func flattenSigned(src, dst []int) {
	for i, vi := range src {
		ai := absInt(vi)
		rank := 1
		for _, vj := range src {
			if absInt(vj) < ai {
				rank++
			}
		}
		if vi < 0 {
			rank = -rank
		}
		dst[i] = rank
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
