package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"hvac-ats-backend/internal/analyzer"
	"hvac-ats-backend/internal/bootstrap"
	"hvac-ats-backend/internal/llm"
	"hvac-ats-backend/internal/shared/config"
	"hvac-ats-backend/internal/shared/storage/object"
	localstore "hvac-ats-backend/internal/shared/storage/object/local"
)

func newAnalyzeCmd() *cobra.Command {
	flags := &resumeFlags{}
	var provider, model string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume with the configured model and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if provider != "" {
				cfg.LLMProvider = provider
			}
			if model != "" {
				cfg.LLMModel = model
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := bootstrap.NewLLMClient(ctx, cfg)
			if err != nil {
				return err
			}
			result, err := analyzeFile(ctx, client, flags)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&provider, "provider", "", "Override LLM_PROVIDER (anthropic, openai, gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Override LLM_MODEL")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "Overall deadline")
	return cmd
}

// analyzeFile runs the analyzer on a scratch copy of the resume, since the
// analyzer removes the stored file once it is done.
func analyzeFile(ctx context.Context, client llm.Client, flags *resumeFlags) (*analyzer.Analysis, error) {
	scratch, err := os.MkdirTemp("", "atsctl-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(scratch)

	store := localstore.New(scratch)
	obj, err := copyToStore(ctx, store, flags.resume)
	if err != nil {
		return nil, err
	}

	a := &analyzer.Analyzer{LLM: client, Store: store}
	in := flags.input("")
	return a.AnalyzeResume(ctx, analyzer.Request{
		FileKey:         obj.Key,
		FileName:        filepath.Base(flags.resume),
		Position:        in.Position,
		RequiredYears:   in.RequiredYears,
		FlexibleOnTitle: in.FlexibleOnTitle,
		JobLocation:     in.JobLocation,
	})
}

func copyToStore(ctx context.Context, store object.Store, path string) (object.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return object.Object{}, fmt.Errorf("open resume: %w", err)
	}
	defer f.Close()
	return store.Save(ctx, "cli", filepath.Base(path), f)
}

func init() {
	rootCmd.AddCommand(newAnalyzeCmd())
}
