package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/textlens/pkg/textlens/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the documents of a run file and write a JSON report",
	RunE:  runAnalyze,
}

var (
	analyzeConfig string
	analyzeOut    string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "Path to run YAML file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Report output path (default: run file output, else stdout)")
	_ = analyzeCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	run, err := config.Load(analyzeConfig)
	if err != nil {
		return fmt.Errorf("failed to load run file: %w", err)
	}
	if analyzeOut != "" {
		run.Output = analyzeOut
	}

	ctx := cmd.Context()

	loader := &config.Loader{Run: run}
	session, err := loader.Session(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	if verbose {
		log.Printf("[VERBOSE] %d stopwords, %s store, %d documents", len(session.StopWords()), run.Store.Type, len(run.Documents))
	}

	if err := session.LoadAll(ctx, run.Documents, run.Concurrency); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	rep, err := session.Report(ctx, loader.ReportOptions())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if verbose {
		for _, d := range rep.Documents {
			log.Printf("[VERBOSE] %s: %d words, %d distinct", d.Label, d.NumWords, d.DistinctWords)
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if run.Output != "" {
		f, err := os.Create(run.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	if err := rep.WriteJSON(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if run.Output != "" {
		log.Printf("Report %s written to %s", rep.ID, run.Output)
	}
	return nil
}
