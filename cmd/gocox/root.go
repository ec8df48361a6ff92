package main

import (
	"flag"
	"io"
	"strconv"

	"github.com/fine-structures/coxeter/libcox"
	"github.com/fine-structures/coxeter/libcox/systems"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand.
type app struct {
	out        io.Writer
	configPath string
	verbosity  int
	reg        *systems.Registry
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &app{
		out: out,
	}

	root := &cobra.Command{
		Use:          "gocox",
		Short:        "gocox tests Coxeter group elements for the Deodhar property",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initLogging(c.verbosity)
			return c.loadRegistry()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML file of additional [[system]] definitions")
	root.PersistentFlags().IntVarP(&c.verbosity, "verbosity", "v", 0, "log verbosity level")

	root.AddCommand(c.deodharCmd())
	root.AddCommand(c.enumerateCmd())
	root.AddCommand(c.systemsCmd())
	root.AddCommand(c.scriptCmd())
	return root
}

func initLogging(verbosity int) {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", strconv.Itoa(verbosity))
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
}

func (c *app) loadRegistry() error {
	c.reg = systems.NewRegistry()
	if c.configPath == "" {
		return nil
	}
	loaded, err := c.reg.LoadFile(c.configPath)
	if err != nil {
		return err
	}
	klog.V(1).Infof("loaded %d systems from %s", len(loaded), c.configPath)
	return nil
}

func (c *app) lookup(name string) (*libcox.System, error) {
	return c.reg.Lookup(name)
}
