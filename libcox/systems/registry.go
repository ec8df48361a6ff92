// Package systems provides the named Coxeter systems (A2..A12, B3..B7, D3..D10, E6..E8, F4, G2)
// and loads additional systems from TOML.
package systems

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/fine-structures/coxeter/libcox"
	"github.com/pkg/errors"
)

// Registry maps case-insensitive names to Coxeter systems.
type Registry struct {
	byName map[string]*libcox.System
}

// NewRegistry returns a Registry holding every built-in named system.
func NewRegistry() *Registry {
	reg := &Registry{
		byName: make(map[string]*libcox.System),
	}

	for n := 2; n <= 12; n++ {
		reg.mustRegister(typeA(n))
	}
	for n := 3; n <= 7; n++ {
		reg.mustRegister(typeB(n))
	}
	for n := 3; n <= 10; n++ {
		reg.mustRegister(typeD(n))
	}
	reg.mustRegister(typeE6())
	reg.mustRegister(typeE(7))
	reg.mustRegister(typeE(8))
	reg.mustRegister(typeF4())
	reg.mustRegister(typeG2())
	return reg
}

func (reg *Registry) mustRegister(sys *libcox.System, err error) {
	if err != nil {
		panic(err)
	}
	reg.Register(sys)
}

// Register adds sys under sys.Name, replacing any system of the same name.
func (reg *Registry) Register(sys *libcox.System) {
	reg.byName[strings.ToUpper(sys.Name)] = sys
}

// Lookup returns the system registered under name.
func (reg *Registry) Lookup(name string) (*libcox.System, error) {
	sys := reg.byName[strings.ToUpper(name)]
	if sys == nil {
		return nil, errors.Wrapf(gocox.ErrUnknownSystem, "%q", name)
	}
	return sys, nil
}

// Names returns the registered system names in family order (A2, A3, ..., A12, B3, ...).
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.byName))
	for _, sys := range reg.byName {
		names = append(names, sys.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		return nameLess(names[i], names[j])
	})
	return names
}

// nameLess orders names by their alpha prefix then by their numeric suffix.
func nameLess(a, b string) bool {
	pa, na := splitName(a)
	pb, nb := splitName(b)
	if pa != pb {
		return pa < pb
	}
	if na != nb {
		return na < nb
	}
	return a < b
}

func splitName(name string) (string, int) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	num := 0
	fmt.Sscanf(name[i:], "%d", &num)
	return strings.ToUpper(name[:i]), num
}

// chain returns an n x n bond matrix with m = 3 between consecutive generators and 2 elsewhere.
func chain(n int) [][]int {
	bonds := make([][]int, n)
	for i := range bonds {
		bonds[i] = make([]int, n)
		for j := range bonds[i] {
			switch {
			case i == j:
				bonds[i][j] = 0
			case i-j == 1 || j-i == 1:
				bonds[i][j] = 3
			default:
				bonds[i][j] = 2
			}
		}
	}
	return bonds
}

func reversal(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	return perm
}

func typeA(n int) (*libcox.System, error) {
	return libcox.NewSystem(fmt.Sprintf("A%d", n), libcox.KindStandard, chain(n), [][]int{reversal(n)})
}

func typeB(n int) (*libcox.System, error) {
	bonds := chain(n)
	bonds[0][1], bonds[1][0] = 4, 4
	return libcox.NewSystem(fmt.Sprintf("B%d", n), libcox.KindStandard, bonds, nil)
}

// typeD places the branch node at 2, with 0 and 1 its two short legs; generator 0 acts by a signed swap.
func typeD(n int) (*libcox.System, error) {
	bonds := chain(n)
	bonds[0][1], bonds[1][0] = 2, 2
	bonds[0][2], bonds[2][0] = 3, 3

	flip := make([]int, n)
	for i := range flip {
		flip[i] = i
	}
	flip[0], flip[1] = 1, 0

	return libcox.NewSystem(fmt.Sprintf("D%d", n), libcox.KindBranch, bonds, [][]int{flip})
}

// typeE6 is the chain 0-1-2-3-4 with 5 attached to 2.
func typeE6() (*libcox.System, error) {
	bonds := chain(6)
	bonds[4][5], bonds[5][4] = 2, 2
	bonds[2][5], bonds[5][2] = 3, 3
	return libcox.NewSystem("E6", libcox.KindStandard, bonds, [][]int{{4, 3, 2, 1, 0, 5}})
}

// typeE is the chain 0-1-2-3-4-6-7.. with 5 attached to 2.
func typeE(n int) (*libcox.System, error) {
	bonds := chain(n)
	bonds[4][5], bonds[5][4] = 2, 2
	bonds[5][6], bonds[6][5] = 2, 2
	bonds[2][5], bonds[5][2] = 3, 3
	bonds[4][6], bonds[6][4] = 3, 3
	return libcox.NewSystem(fmt.Sprintf("E%d", n), libcox.KindStandard, bonds, nil)
}

func typeF4() (*libcox.System, error) {
	bonds := [][]int{
		{0, 3, 2, 2},
		{3, 0, 4, 2},
		{2, 4, 0, 3},
		{2, 2, 3, 0},
	}
	return libcox.NewSystem("F4", libcox.KindStandard, bonds, nil)
}

func typeG2() (*libcox.System, error) {
	bonds := [][]int{
		{0, 6},
		{6, 0},
	}
	return libcox.NewSystem("G2", libcox.KindStandard, bonds, nil)
}

// ExcludedD8Pattern returns the D8 element with one-line notation {-1, 6, 7, 8, -5, 2, 3, 4, 9}.
// Deodhar elements of systems containing D8 are expected never to contain it.
func ExcludedD8Pattern(reg *Registry) (*libcox.Element, error) {
	D8, err := reg.Lookup("D8")
	if err != nil {
		return nil, err
	}
	return libcox.NewFromState(D8,
		[]int{5, 5, 1, 1, -11, 5, 1, 1},
		[]int{-1, 6, 7, 8, -5, 2, 3, 4, 9},
	)
}
