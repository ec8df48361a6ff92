package systems

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fine-structures/coxeter/gocox"
	"github.com/fine-structures/coxeter/libcox"
	"github.com/pkg/errors"
)

// SystemDef is one [[system]] table of a systems config file:
//
//	[[system]]
//	name = "A3x"
//	kind = "standard"                   # or "branch"
//	bonds = [[0,3,2],[3,0,3],[2,3,0]]   # -1 denotes m = ∞
//	automorphisms = [[2,1,0]]
type SystemDef struct {
	Name          string  `toml:"name"`
	Kind          string  `toml:"kind"`
	Bonds         [][]int `toml:"bonds"`
	Automorphisms [][]int `toml:"automorphisms"`
}

type configFile struct {
	Systems []SystemDef `toml:"system"`
}

// Build validates this definition and returns the resulting system.
func (def *SystemDef) Build() (*libcox.System, error) {
	if def.Name == "" {
		return nil, errors.Wrap(gocox.ErrBadConfig, "system has no name")
	}
	kind, err := libcox.ParseKind(def.Kind)
	if err != nil {
		return nil, errors.Wrapf(err, "system %q", def.Name)
	}
	return libcox.NewSystem(def.Name, kind, def.Bonds, def.Automorphisms)
}

// Load reads [[system]] definitions in TOML from rdr and registers each one.
func (reg *Registry) Load(rdr io.Reader) ([]*libcox.System, error) {
	var cfg configFile
	if _, err := toml.NewDecoder(rdr).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(gocox.ErrBadConfig, "%v", err)
	}
	return reg.registerDefs(cfg.Systems)
}

// LoadFile reads [[system]] definitions from the given TOML file and registers each one.
func (reg *Registry) LoadFile(pathname string) ([]*libcox.System, error) {
	data, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}

	var cfg configFile
	if err = toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(gocox.ErrBadConfig, "%s: %v", pathname, err)
	}
	return reg.registerDefs(cfg.Systems)
}

func (reg *Registry) registerDefs(defs []SystemDef) ([]*libcox.System, error) {
	loaded := make([]*libcox.System, 0, len(defs))
	for i := range defs {
		sys, err := defs[i].Build()
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, sys)
	}
	for _, sys := range loaded {
		reg.Register(sys)
	}
	return loaded, nil
}
