package main

import (
	"fmt"
	"time"

	"github.com/fine-structures/coxeter/pycox"
	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	_ "github.com/go-python/gpython/stdlib"
)

func (c *app) scriptCmd() *cobra.Command {
	var startup string

	cmd := &cobra.Command{
		Use:   "script [file.py]",
		Short: "Run a gpython script with the _pycox module, or start a REPL",
		Long: `Run a gpython script with the _pycox module, or start a REPL.

Systems loaded with --config are visible to scripts through _pycox.Systems() and friends.
With no file, --startup names a script run in the REPL module before the prompt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return c.runScript(args[0])
			}
			return c.runREPL(startup)
		},
	}
	cmd.Flags().StringVar(&startup, "startup", "", "script to run before the REPL prompt")
	return cmd
}

// newScriptContext returns a gpython context whose _pycox workspace uses this app's registry.
func (c *app) newScriptContext() py.Context {
	pycox.UseRegistry(c.reg)
	return py.NewContext(py.DefaultContextOpts())
}

func closeScriptContext(ctx py.Context, err error) error {
	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
	}
	return err
}

func (c *app) runScript(pathname string) error {
	ctx := c.newScriptContext()

	startTime := time.Now()
	fmt.Fprintf(c.out, "<<<>>>   executing '%s'   <<<>>>\n", pathname)

	_, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
	if err == nil {
		fmt.Fprintf(c.out, "<<<>>>   execution complete: %v   <<<>>>\n", time.Since(startTime))
	}
	return closeScriptContext(ctx, err)
}

func (c *app) runREPL(startup string) error {
	ctx := c.newScriptContext()
	replCtx := repl.New(ctx)

	var err error
	if startup != "" {
		klog.V(1).Infof("running REPL startup script %s", startup)
		_, err = py.RunFile(ctx, startup, py.CompileOpts{}, replCtx.Module)
	}
	if err == nil {
		cli.RunREPL(replCtx)
	}
	return closeScriptContext(ctx, err)
}
