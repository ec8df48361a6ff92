package main

import (
	"fmt"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/fine-structures/coxeter/libcox"
	"github.com/fine-structures/coxeter/libcox/systems"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (c *app) enumerateCmd() *cobra.Command {
	var (
		maxLength int
		setName   string
		strict    bool
		list      bool
	)

	cmd := &cobra.Command{
		Use:   "enumerate <system>...",
		Short: "Classify every short-braid-avoiding element of each system as Deodhar or not",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, ok := gocox.ParseSetBackend(setName)
			if !ok {
				return errors.Errorf("unknown set backend %q (expected mem or lsm)", setName)
			}
			opts := gocox.EnumOpts{
				MaxLength:   maxLength,
				Backend:     backend,
				StrictBound: strict,
				Context:     cmd.Context(),
			}
			for _, name := range args {
				if err := c.runEnumerate(name, opts, list); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLength, "max-length", 0, "stop at elements longer than this (0 means no limit)")
	cmd.Flags().StringVar(&setName, "set", "mem", "visited/forbidden set backend: mem or lsm")
	cmd.Flags().BoolVar(&strict, "strict", false, "also fail proper masks with statistic 0")
	cmd.Flags().BoolVar(&list, "list", false, "print each element as it is classified")
	return cmd
}

func (c *app) runEnumerate(name string, opts gocox.EnumOpts, list bool) error {
	sys, err := c.lookup(name)
	if err != nil {
		return err
	}
	D8pattern, err := systems.ExcludedD8Pattern(c.reg)
	if err != nil {
		return err
	}

	if list {
		opts.OnElement = func(info gocox.ElementInfo) {
			fmt.Fprintf(c.out, "%3d %-16v %v\n", info.Length, info.Verdict, info.Word)
		}
	}

	fmt.Fprintf(c.out, "Type %s:\n", sys.Name)
	sys.WriteMatrix(c.out)

	census, err := libcox.Enumerate(sys, opts, D8pattern)
	if err != nil {
		return err
	}

	for _, pattern := range census.Patterns {
		fmt.Fprintf(c.out, "Found MINIMAL PATTERN of rank %d:  %v\n", pattern.Rank, pattern.Element)
	}
	for _, word := range census.Covered {
		fmt.Fprintf(c.out, "  (D8 1-line pattern found in %v of rank %d)\n", word, word.Rank())
	}
	for _, mv := range census.MuViolations {
		fmt.Fprintf(c.out, "ERROR:  Found NON-01 MU VALUE:  w = %v, x = %v, mu = %d\n", mv.W, mv.X, mv.Mu)
	}
	for _, pv := range census.PatternViolations {
		fmt.Fprintf(c.out, "ERROR:  cannot use D8 1-line pattern for Deodhar characterization:  %v %v\n", pv.OneLine, pv.W)
	}

	fmt.Fprintf(c.out, "Finished:  found %d Deodhar elements (out of %d short-braid-avoiding elements processed, %d non-Deodhar patterns, %d forbidden).\n",
		census.Deodhar, census.Processed, len(census.Patterns), census.ForbiddenCount)
	if census.Truncated {
		fmt.Fprintf(c.out, "  (stopped after length %d)\n", census.MaxLength)
	}
	fmt.Fprintln(c.out)
	return nil
}
