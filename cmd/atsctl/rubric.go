package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hvac-ats-backend/internal/positions"
	"hvac-ats-backend/internal/rubric"
)

type rubricOptions struct {
	position string
	years    float64
	strict   bool
	asJSON   bool
}

func newRubricCmd() *cobra.Command {
	opts := &rubricOptions{}
	cmd := &cobra.Command{
		Use:   "rubric",
		Short: "Print the scoring framework for a position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRubric(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.position, "position", "", "Position name, e.g. \"HVAC Service Technician\" (required)")
	cmd.Flags().Float64Var(&opts.years, "years", 0, "Required years of experience")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Require the exact title (no flexibility on title)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the framework and tier bands as JSON")
	_ = cmd.MarkFlagRequired("position")
	return cmd
}

func runRubric(cmd *cobra.Command, opts *rubricOptions) error {
	typ := positions.TypeOf(opts.position)
	gen, ok := rubric.ForType(typ)
	if !ok {
		return fmt.Errorf("no dedicated rubric for %q; known positions: %s", opts.position, strings.Join(positions.Names(), ", "))
	}
	r := gen(opts.years, !opts.strict)
	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintf(out, "# %s (%s)\n\n", opts.position, typ)
	fmt.Fprintln(out, r.Framework)
	return nil
}

func init() {
	rootCmd.AddCommand(newRubricCmd())
}
