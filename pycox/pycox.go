// Package pycox registers the gpython module _pycox, exposing Coxeter elements, the Deodhar test and the weak-order census to scripts.
package pycox

import (
	"strings"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/fine-structures/coxeter/libcox"
	"github.com/fine-structures/coxeter/libcox/systems"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyElementType   = py.NewType("Element", "an element of a Coxeter group")
	pyWorkspaceType = py.NewType("Workspace", "holds the systems registry of a script session")
)

const (
	kWorkspaceAttr = "_Workspace"
)

// Workspace is the per-module session state: the registry scripts look systems up in.
type Workspace struct {
	Registry *systems.Registry
}

var sRegistry *systems.Registry

// UseRegistry sets the registry that new workspaces start from.
// If reg is nil, each workspace gets its own built-in registry.
func UseRegistry(reg *systems.Registry) {
	sRegistry = reg
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func getWorkspace(module py.Object) *Workspace {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		reg := sRegistry
		if reg == nil {
			reg = systems.NewRegistry()
		}
		wsObj = &Workspace{
			Registry: reg,
		}
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj.(*Workspace)
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	return getWorkspace(module), nil
}

func py_Workspace_LoadSystems(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}

	loaded, err := ws.Registry.LoadFile(pathname)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	names := make(py.Tuple, len(loaded))
	for i, sys := range loaded {
		names[i] = py.String(sys.Name)
	}
	return names, nil
}

type pyElement struct {
	*libcox.Element
}

func (X pyElement) Type() *py.Type {
	return pyElementType
}

func (X pyElement) M__str__() (py.Object, error) {
	return py.String(X.String()), nil
}

func (X pyElement) M__repr__() (py.Object, error) {
	return X.M__str__()
}

func lookupSystem(module py.Object, arg py.Object) (*libcox.System, error) {
	name, ok := arg.(py.String)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected system name (got %v)", arg.Type().Name)
	}
	sys, err := getWorkspace(module).Registry.Lookup(string(name))
	if err != nil {
		return nil, py.ExceptionNewf(py.KeyError, "%v", err)
	}
	return sys, nil
}

// loadWord accepts a word as a string ("0 1 2", "s0 s1", "1021") or as a tuple or list of ints.
func loadWord(sys *libcox.System, arg py.Object) (gocox.Word, error) {
	var items []py.Object
	switch obj := arg.(type) {
	case py.String:
		word, err := libcox.ParseWordFor(sys, string(obj))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return word, nil
	case py.Tuple:
		items = obj
	case *py.List:
		items = obj.Items
	case py.NoneType:
		return gocox.Word{}, nil
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected word as str, tuple or list (got %v)", arg.Type().Name)
	}

	word := make(gocox.Word, len(items))
	for i, item := range items {
		si, err := py.GetInt(item)
		if err != nil {
			return nil, err
		}
		if si < 0 || int(si) >= sys.Size() {
			return nil, py.ExceptionNewf(py.ValueError, "%s has no generator %d", sys.Name, si)
		}
		word[i] = int(si)
	}
	return word, nil
}

func intsToTuple(vals []int) py.Tuple {
	tuple := make(py.Tuple, len(vals))
	for i, v := range vals {
		tuple[i] = py.Int(v)
	}
	return tuple
}

func getGenerator(args py.Tuple) (int, error) {
	if len(args) != 1 {
		return 0, py.ExceptionNewf(py.TypeError, "expected 1 generator argument (got %d)", len(args))
	}
	si, err := py.GetInt(args[0])
	if err != nil {
		return 0, err
	}
	return int(si), nil
}

// Element(system, word) returns the identity of system right-multiplied by each letter of word.
func py_Element(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, py.ExceptionNewf(py.TypeError, "Element(system[, word])")
	}
	sys, err := lookupSystem(module, args[0])
	if err != nil {
		return nil, err
	}
	word := gocox.Word{}
	if len(args) > 1 {
		if word, err = loadWord(sys, args[1]); err != nil {
			return nil, err
		}
	}
	X, err := libcox.NewFromWord(sys, word)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyElement{X}, nil
}

func py_Element_Length(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyElement)
	return py.Int(X.Length()), nil
}

func py_Element_ReducedWord(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyElement)
	return intsToTuple(X.ReducedWord()), nil
}

func py_Element_OneLine(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyElement)
	return intsToTuple(X.OneLine()), nil
}

func py_Element_State(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyElement)
	return intsToTuple(X.State()), nil
}

func py_Element_RightMultiply(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyElement)
	si, err := getGenerator(args)
	if err != nil {
		return nil, err
	}
	if err = X.RightMultiply(si); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return X, nil
}

func py_Element_LeftMultiply(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyElement)
	si, err := getGenerator(args)
	if err != nil {
		return nil, err
	}
	if err = X.LeftMultiply(si); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return X, nil
}

func py_Element_ContainsPattern(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyElement)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "expected 1 Element argument (got %d)", len(args))
	}
	pattern, ok := args[0].(pyElement)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Element object (got %v)", args[0].Type().Name)
	}
	return py.NewBool(X.ContainsOneLinePattern(pattern.Element)), nil
}

func py_Element_Clone(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyElement)
	return pyElement{X.Clone()}, nil
}

// Deodhar(system, word[, target]) evaluates word and returns a dict with keys
// "deodhar", "word", "failing_mask", "P" (sub-element -> polynomial text) and "mu".
// If target is given, "P" holds only P(w, target).
func py_Deodhar(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, py.ExceptionNewf(py.TypeError, "Deodhar(system, word[, target])")
	}
	sys, err := lookupSystem(module, args[0])
	if err != nil {
		return nil, err
	}
	word, err := loadWord(sys, args[1])
	if err != nil {
		return nil, err
	}

	opts := gocox.DefaultEvalOpts
	opts.AllMasks = true
	if len(args) > 2 {
		if opts.Target, err = loadWord(sys, args[2]); err != nil {
			return nil, err
		}
	}

	w, err := libcox.NewFromWord(sys, word)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	ev, err := libcox.Evaluate(w, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	polys := py.NewStringDict()
	if opts.Target != nil {
		if P, found := ev.P(nil); found {
			polys[ev.TargetKey] = py.String(P.String())
		} else {
			polys[ev.TargetKey] = py.String("0")
		}
	} else {
		ev.Table.Each(func(x gocox.Word, P *libcox.Polynomial) {
			polys[x.String()] = py.String(P.String())
		})
	}

	mu := py.NewStringDict()
	for key, count := range ev.Mu {
		mu[key] = py.Int(count)
	}

	result := py.NewStringDict()
	result["deodhar"] = py.NewBool(ev.Deodhar)
	result["word"] = intsToTuple(ev.Word)
	result["failing_mask"] = py.String(ev.FailingMask)
	result["P"] = polys
	result["mu"] = mu
	return result, nil
}

// Enumerate(system[, maxLength]) runs the weak-order census and returns a dict of its counts and patterns.
func py_Enumerate(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, py.ExceptionNewf(py.TypeError, "Enumerate(system[, maxLength])")
	}
	sys, err := lookupSystem(module, args[0])
	if err != nil {
		return nil, err
	}
	opts := gocox.DefaultEnumOpts
	if len(args) > 1 {
		maxLen, err := py.GetInt(args[1])
		if err != nil {
			return nil, err
		}
		opts.MaxLength = int(maxLen)
	}

	D8pattern, err := systems.ExcludedD8Pattern(getWorkspace(module).Registry)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	census, err := libcox.Enumerate(sys, opts, D8pattern)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	patterns := make(py.Tuple, len(census.Patterns))
	for i, pattern := range census.Patterns {
		patterns[i] = intsToTuple(pattern.Word)
	}

	result := py.NewStringDict()
	result["processed"] = py.Int(census.Processed)
	result["deodhar"] = py.Int(census.Deodhar)
	result["non_deodhar"] = py.Int(census.NonDeodhar)
	result["forbidden"] = py.Int(census.ForbiddenCount)
	result["max_length"] = py.Int(census.MaxLength)
	result["truncated"] = py.NewBool(census.Truncated)
	result["patterns"] = patterns
	result["mu_violations"] = py.Int(len(census.MuViolations))
	result["pattern_violations"] = py.Int(len(census.PatternViolations))
	return result, nil
}

func py_Systems(module py.Object, args py.Tuple) (py.Object, error) {
	names := getWorkspace(module).Registry.Names()
	tuple := make(py.Tuple, len(names))
	for i, name := range names {
		tuple[i] = py.String(name)
	}
	return tuple, nil
}

func py_Matrix(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "Matrix(system)")
	}
	sys, err := lookupSystem(module, args[0])
	if err != nil {
		return nil, err
	}
	out := strings.Builder{}
	sys.WriteMatrix(&out)
	return py.String(out.String()), nil
}

func init() {

	/////////////////////////////////
	// Element
	{
		pyElementType.Dict["Length"] = py.MustNewMethod("Length", py_Element_Length, 0, "returns the Coxeter length")
		pyElementType.Dict["ReducedWord"] = py.MustNewMethod("ReducedWord", py_Element_ReducedWord, 0, "returns a reduced word as a tuple")
		pyElementType.Dict["OneLine"] = py.MustNewMethod("OneLine", py_Element_OneLine, 0, "returns the one-line notation as a tuple")
		pyElementType.Dict["State"] = py.MustNewMethod("State", py_Element_State, 0, "returns the numbers game state as a tuple")
		pyElementType.Dict["RightMultiply"] = py.MustNewMethod("RightMultiply", py_Element_RightMultiply, 0, "sets X to X*s and returns X")
		pyElementType.Dict["LeftMultiply"] = py.MustNewMethod("LeftMultiply", py_Element_LeftMultiply, 0, "sets X to s*X and returns X")
		pyElementType.Dict["ContainsPattern"] = py.MustNewMethod("ContainsPattern", py_Element_ContainsPattern, 0, "")
		pyElementType.Dict["Clone"] = py.MustNewMethod("Clone", py_Element_Clone, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["LoadSystems"] = py.MustNewMethod("LoadSystems", py_Workspace_LoadSystems, 0, "registers the systems of a TOML file")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Systems", py_Systems, 0, "returns the registered system names"),
			py.MustNewMethod("Matrix", py_Matrix, 0, "returns the Coxeter matrix of a system as text"),
			py.MustNewMethod("Element", py_Element, 0, ""),
			py.MustNewMethod("Deodhar", py_Deodhar, 0, ""),
			py.MustNewMethod("Enumerate", py_Enumerate, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":    py.String(LIB_VERSION),
			"MAX_GENERATORS": py.Int(gocox.MaxGenerators),
			"INFINITY":       py.Int(gocox.Infinity),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pycox",
				Doc:  "Coxeter element and Deodhar census gpython module",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
