// Command atsctl inspects scoring frameworks and runs one-off resume
// analyses against the configured model provider.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "atsctl",
	Short:         "HVAC applicant tracking tools",
	Long:          "atsctl prints position rubrics and prompts, and scores a resume without going through the API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
