package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hvac-ats-backend/internal/extract"
	"hvac-ats-backend/internal/prompt"
)

// resumeFlags are shared by the commands that read a resume file.
type resumeFlags struct {
	resume   string
	position string
	years    float64
	strict   bool
	location string
}

func (f *resumeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.resume, "resume", "", "Path to a PDF resume (required)")
	cmd.Flags().StringVar(&f.position, "position", "", "Position name (required)")
	cmd.Flags().Float64Var(&f.years, "years", 0, "Required years of experience")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Require the exact title")
	cmd.Flags().StringVar(&f.location, "location", "", "Job location used for the distance check")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("position")
}

func (f *resumeFlags) input(text string) prompt.Input {
	return prompt.Input{
		Position:        f.position,
		RequiredYears:   f.years,
		FlexibleOnTitle: !f.strict,
		ResumeText:      text,
		JobLocation:     f.location,
	}
}

func newPromptCmd() *cobra.Command {
	flags := &resumeFlags{}
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the analysis prompt assembled for a resume",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(flags.resume)
			if err != nil {
				return fmt.Errorf("read resume: %w", err)
			}
			text, err := extract.FromBytes(cmd.Context(), data, filepath.Base(flags.resume))
			if err != nil {
				return fmt.Errorf("extract resume text: %w", err)
			}
			p := prompt.Build(flags.input(text))
			fmt.Fprintf(cmd.ErrOrStderr(), "prompt type=%s chars=%d\n", p.Type, len(p.Text))
			fmt.Fprintln(cmd.OutOrStdout(), p.Text)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newPromptCmd())
}
