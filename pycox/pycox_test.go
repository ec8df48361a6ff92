package pycox

import (
	"testing"

	"github.com/go-python/gpython/py"
	_ "github.com/go-python/gpython/stdlib"
)

const kTestScript = `
import _pycox as cox

assert len(cox.Systems()) == 29

X = cox.Element("A3", "0 1 2")
assert X.Length() == 3
assert X.State() == (1, 1, -3)
assert X.OneLine() == (2, 3, 4, 1)
assert X.ReducedWord() == (0, 1, 2)

X.LeftMultiply(2)
assert X.Length() == 4
assert X.OneLine() == (2, 4, 3, 1)
X.RightMultiply(2)
assert X.Length() == 3

Y = cox.Element("A2", [0])
assert X.ContainsPattern(Y)
assert not cox.Element("A3").ContainsPattern(Y)

G = cox.Element("G2", (0, 1, 0, 1, 0, 1))
assert G.ReducedWord() == (1, 0, 1, 0, 1, 0)

ev = cox.Deodhar("A2", "010")
assert ev["deodhar"]
assert ev["P"]["()"] == "1 + q"
assert ev["P"]["(0 1)"] == "1"
assert ev["mu"]["(1 0)"] == 1

ev = cox.Deodhar("A2", "010", "0")
assert ev["P"]["(0)"] == "1 + q"

census = cox.Enumerate("A4")
assert census["processed"] == 42
assert census["deodhar"] == 42
assert census["forbidden"] == 0

census = cox.Enumerate("A3", 2)
assert census["truncated"]
assert census["processed"] == 9
`

func runScript(src string) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	code, err := py.Compile(src+"\n", "<test>", py.ExecMode, 0, true)
	if err != nil {
		return err
	}
	_, err = py.RunCode(ctx, code, "<test>", nil)
	return err
}

func TestRunScriptAsserts(t *testing.T) {
	if err := runScript("import _pycox\nassert True\n"); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if err := runScript("import _pycox\nassert False\n"); err == nil {
		t.Fatal("expected a failing assert past the first statement to be reported")
	}
}

func TestModule(t *testing.T) {
	if err := runScript(kTestScript); err != nil {
		t.Fatalf("script failed: %v", err)
	}
}

func TestModuleErrors(t *testing.T) {
	scripts := []string{
		"import _pycox\n_pycox.Element('Z9', '0')\n",
		"import _pycox\n_pycox.Element('A2', '0 5')\n",
		"import _pycox\n_pycox.Element('A2', [0, 2])\n",
		"import _pycox\n_pycox.Deodhar('A2')\n",
	}
	for _, src := range scripts {
		if err := runScript(src); err == nil {
			t.Fatalf("expected an error from %q", src)
		}
	}
}
