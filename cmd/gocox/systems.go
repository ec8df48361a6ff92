package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *app) systemsCmd() *cobra.Command {
	var matrices bool

	cmd := &cobra.Command{
		Use:   "systems [system]...",
		Short: "List the available Coxeter systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = c.reg.Names()
			}
			for _, name := range names {
				sys, err := c.lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%-6s %-8v %d generators, %d automorphisms\n", sys.Name, sys.Kind(), sys.Size(), sys.NumAutomorphisms())
				if matrices || len(args) > 0 {
					sys.WriteMatrix(c.out)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&matrices, "matrix", "m", false, "also print each Coxeter matrix")
	return cmd
}
