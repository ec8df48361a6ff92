package main

import (
	"bytes"
	"fmt"

	"github.com/fine-structures/coxeter/gocox"
	"github.com/fine-structures/coxeter/libcox"
	"github.com/spf13/cobra"
)

func (c *app) deodharCmd() *cobra.Command {
	var (
		wExpr  string
		xExpr  string
		mu     bool
		masks  bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "deodhar <system> -w <word>",
		Short: "Test w for the Deodhar property and print its Kazhdan-Lusztig basis element",
		Long: `Test w for the Deodhar property and print its Kazhdan-Lusztig basis element.

Words are written "1021" (one generator per digit), "1 0 2 1", "1,0,2,1" or "s1 s0 s2 s1".
If w is Deodhar, P(w,x) is printed for each sub-element x in lex order of reduced words.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := gocox.EvalOpts{
				StrictBound: strict,
				AllMasks:    masks || mu,
				RecordMasks: masks || mu,
				MuOnly:      mu,
			}
			return c.runDeodhar(args[0], wExpr, xExpr, opts)
		},
	}

	cmd.Flags().StringVarP(&wExpr, "word", "w", "", "word for the element w (required)")
	cmd.Flags().StringVarP(&xExpr, "sub", "x", "", "only print P(w,x) for this sub-element")
	cmd.Flags().BoolVar(&mu, "mu", false, "print the mu masks")
	cmd.Flags().BoolVar(&masks, "masks", false, "print every mask")
	cmd.Flags().BoolVar(&strict, "strict", false, "also fail proper masks with statistic 0")
	cmd.MarkFlagRequired("word")
	return cmd
}

func (c *app) runDeodhar(sysName, wExpr, xExpr string, opts gocox.EvalOpts) error {
	sys, err := c.lookup(sysName)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Coxeter type %s with Coxeter matrix:\n", sys.Name)
	sys.WriteMatrix(c.out)

	word, err := libcox.ParseWordFor(sys, wExpr)
	if err != nil {
		return err
	}
	if xExpr != "" {
		if opts.Target, err = libcox.ParseWordFor(sys, xExpr); err != nil {
			return err
		}
	}

	w, err := libcox.NewFromWord(sys, word)
	if err != nil {
		return err
	}
	ev, err := libcox.Evaluate(w, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "w is using reduced expression\n....:  %v.\n", ev.Word)
	if opts.Target != nil {
		fmt.Fprintf(c.out, "x is using reduced expression %s.\n", ev.TargetKey)
	}

	line := bytes.Buffer{}
	for _, report := range ev.Masks {
		line.Reset()
		fmt.Fprintf(&line, "mask:  %s:  %s", report.Mask, libcox.MonomialString(report.Defects))
		if report.Mu {
			line.WriteString(" (mu mask)")
		}
		if report.Failing {
			line.WriteString(" (not Deodhar)")
		}
		line.WriteByte('\n')
		c.out.Write(line.Bytes())
	}

	if !ev.Deodhar {
		fmt.Fprintf(c.out, "The element w has non-Deodhar mask:\n%s\n", ev.FailingMask)
		return nil
	}

	fmt.Fprintln(c.out, "In lex order on reduced expressions:")
	ev.Table.Each(func(x gocox.Word, P *libcox.Polynomial) {
		if opts.Target != nil && x.String() != ev.TargetKey {
			return
		}
		fmt.Fprintf(c.out, "P(%v,%v) = %v\n", ev.Word, x, P)
	})
	for _, mv := range ev.MuViolations {
		fmt.Fprintf(c.out, "WARNING:  mu = %d for x = %v\n", mv.Mu, mv.X)
	}
	return nil
}
