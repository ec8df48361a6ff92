package libcox

import (
	"fmt"
	"io"
	"strings"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/pkg/errors"
)

// Kind selects how a generator acts on the one-line notation of an element.
type Kind int32

const (
	// KindStandard: generator i swaps one-line positions i and i+1 (type A style).
	KindStandard Kind = iota

	// KindBranch: generator i > 0 swaps positions i-1 and i, and generator 0 swaps positions 0 and 1 and negates both (type D style).
	KindBranch
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindBranch:
		return "branch"
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// ParseKind maps a kind name ("standard", "branch") to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "", "standard", "a":
		return KindStandard, nil
	case "branch", "d":
		return KindBranch, nil
	}
	return KindStandard, errors.Wrapf(gocox.ErrBadConfig, "unknown system kind %q", name)
}

// System is an immutable Coxeter system: a bond matrix, its diagram automorphisms, and a one-line action.
//
// A System is built once and shared by pointer by every Element built from it.
type System struct {
	Name  string
	kind  Kind
	size  int
	bonds []int // size x size, row-major; diagonal is 0
	autos []int // NumAutomorphisms() x size, row-major
}

// NewSystem validates the given bond matrix and automorphisms and returns a new System.
//
// Each automorphism is a permutation p of 0..n-1 such that m(p(i),p(j)) == m(i,j).
// Diagonal entries of bonds are ignored.
func NewSystem(name string, kind Kind, bonds [][]int, automorphisms [][]int) (*System, error) {
	n := len(bonds)
	if n == 0 || n > gocox.MaxGenerators {
		return nil, errors.Wrapf(gocox.ErrBadMatrix, "system %q: %d generators", name, n)
	}
	if kind != KindStandard && kind != KindBranch {
		return nil, errors.Wrapf(gocox.ErrBadConfig, "system %q: %v", name, kind)
	}
	if kind == KindBranch && n < 2 {
		return nil, errors.Wrapf(gocox.ErrBadMatrix, "system %q: branch kind needs at least 2 generators", name)
	}

	sys := &System{
		Name:  name,
		kind:  kind,
		size:  n,
		bonds: make([]int, n*n),
	}

	for i, row := range bonds {
		if len(row) != n {
			return nil, errors.Wrapf(gocox.ErrBadMatrix, "system %q: row %d has %d entries (expected %d)", name, i, len(row), n)
		}
	}
	for i, row := range bonds {
		for j, m := range row {
			if i == j {
				continue
			}
			if !gocox.IsSupportedBond(m) {
				return nil, errors.Wrapf(gocox.ErrBadBond, "system %q: m(%d,%d) = %d", name, i, j, m)
			}
			if bonds[j][i] != m {
				return nil, errors.Wrapf(gocox.ErrBadMatrix, "system %q: m(%d,%d) != m(%d,%d)", name, i, j, j, i)
			}
			sys.bonds[i*n+j] = m
		}
	}

	sys.autos = make([]int, 0, n*len(automorphisms))
	for k, perm := range automorphisms {
		if err := sys.checkAutomorphism(perm); err != nil {
			return nil, errors.Wrapf(err, "system %q: automorphism %d", name, k)
		}
		sys.autos = append(sys.autos, perm...)
	}

	return sys, nil
}

func (sys *System) checkAutomorphism(perm []int) error {
	n := sys.size
	if len(perm) != n {
		return errors.Wrapf(gocox.ErrBadAutomorphism, "%d entries (expected %d)", len(perm), n)
	}
	var seen uint64
	for _, pi := range perm {
		if pi < 0 || pi >= n || seen&(1<<uint(pi)) != 0 {
			return errors.Wrapf(gocox.ErrBadAutomorphism, "%v is not a permutation", perm)
		}
		seen |= 1 << uint(pi)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if sys.bonds[perm[i]*n+perm[j]] != sys.bonds[i*n+j] {
				return errors.Wrapf(gocox.ErrBadAutomorphism, "%v moves m(%d,%d)", perm, i, j)
			}
		}
	}
	return nil
}

// Size returns the number of generators of this system.
func (sys *System) Size() int {
	return sys.size
}

// Kind returns the one-line action of this system.
func (sys *System) Kind() Kind {
	return sys.kind
}

// BondStrength returns m(i,j).
func (sys *System) BondStrength(i, j int) int {
	if i < 0 || i >= sys.size || j < 0 || j >= sys.size {
		panic(fmt.Sprintf("libcox: generator pair (%d,%d) out of range for %s", i, j, sys.Name))
	}
	return sys.bonds[i*sys.size+j]
}

// Amplitude returns how many multiples of state[s] generator i gains when s fires in the numbers game.
//
// m = 3 gives 1 and m = ∞ gives 2 in both directions.  For m = 4 and m = 6 the amplitudes
// from the lower to the higher index are 2 and 3 respectively, and 1 in the other direction,
// so that their product is 4cos²(π/m).  Commuting generators (m = 0 or 2) give 0.
func (sys *System) Amplitude(s, i int) int {
	switch sys.BondStrength(s, i) {
	case 3:
		return 1
	case gocox.Infinity:
		return 2
	case 4:
		if s < i {
			return 2
		}
		return 1
	case 6:
		if s < i {
			return 3
		}
		return 1
	}
	return 0
}

// NumAutomorphisms returns the number of diagram automorphisms listed for this system.
func (sys *System) NumAutomorphisms() int {
	return len(sys.autos) / sys.size
}

// Automorphism returns the image of generator i under automorphism k.
func (sys *System) Automorphism(k, i int) int {
	if i < 0 || i >= sys.size || k < 0 || k >= sys.NumAutomorphisms() {
		panic(fmt.Sprintf("libcox: automorphism (%d,%d) out of range for %s", k, i, sys.Name))
	}
	return sys.autos[k*sys.size+i]
}

// ApplyGenerator applies the one-line action of generator i to oneLine (of length Size()+1).
func (sys *System) ApplyGenerator(oneLine []int, i int) {
	if i < 0 || i >= sys.size {
		panic(fmt.Sprintf("libcox: generator %d out of range for %s", i, sys.Name))
	}

	switch sys.kind {
	case KindStandard:
		oneLine[i], oneLine[i+1] = oneLine[i+1], oneLine[i]
	case KindBranch:
		if i > 0 {
			oneLine[i-1], oneLine[i] = oneLine[i], oneLine[i-1]
		} else {
			oneLine[0], oneLine[1] = -oneLine[1], -oneLine[0]
		}
	}
}

// Equals returns true if other has the same size and bond matrix.
func (sys *System) Equals(other *System) bool {
	if other == nil || other.size != sys.size {
		return false
	}
	for i, m := range sys.bonds {
		if other.bonds[i] != m {
			return false
		}
	}
	return true
}

// Contains returns true if sub's bond matrix equals the leading principal sub-matrix of this system.
func (sys *System) Contains(sub *System) bool {
	if sub == nil || sub.size > sys.size {
		return false
	}
	n := sub.size
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if sys.bonds[i*sys.size+j] != sub.bonds[i*n+j] {
				return false
			}
		}
	}
	return true
}

// Bonds returns a copy of the bond matrix.
func (sys *System) Bonds() [][]int {
	n := sys.size
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = append([]int(nil), sys.bonds[i*n:(i+1)*n]...)
	}
	return rows
}

// Automorphisms returns a copy of the automorphism list.
func (sys *System) Automorphisms() [][]int {
	n := sys.size
	perms := make([][]int, sys.NumAutomorphisms())
	for k := range perms {
		perms[k] = append([]int(nil), sys.autos[k*n:(k+1)*n]...)
	}
	return perms
}

// WriteMatrix prints the bond matrix, one row per line.
func (sys *System) WriteMatrix(out io.Writer) {
	n := sys.size
	var buf []byte
	for i := 0; i < n; i++ {
		buf = buf[:0]
		for j := 0; j < n; j++ {
			m := sys.bonds[i*n+j]
			switch {
			case i == j:
				buf = append(buf, "  1"...)
			case m == gocox.Infinity:
				buf = append(buf, "  ∞"...)
			default:
				buf = append(buf, fmt.Sprintf("%3d", m)...)
			}
		}
		buf = append(buf, '\n')
		out.Write(buf)
	}
}
