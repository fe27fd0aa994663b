package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/cognicore/textlens/pkg/textlens/config"
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Print only the document to word flow diagram of a run file",
	RunE:  runFlow,
}

var flowConfig string

func init() {
	flowCmd.Flags().StringVarP(&flowConfig, "config", "c", "", "Path to run YAML file (required)")
	_ = flowCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(flowCmd)
}

func runFlow(cmd *cobra.Command, _ []string) error {
	run, err := config.Load(flowConfig)
	if err != nil {
		return fmt.Errorf("failed to load run file: %w", err)
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

	if err := session.LoadAll(ctx, run.Documents, run.Concurrency); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	flow, err := session.WordcountFlow(ctx, run.FlowWords, run.FlowK)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("[VERBOSE] flow has %d nodes and %d links", len(flow.Nodes), len(flow.Links))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(flow)
}
