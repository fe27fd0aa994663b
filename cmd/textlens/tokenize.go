package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/textlens/pkg/textlens/ingest"
	"github.com/cognicore/textlens/pkg/textlens/stoplist"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Print the tokens of a file or stdin, one per line",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

var tokenizeStopwords string

func init() {
	tokenizeCmd.Flags().StringVarP(&tokenizeStopwords, "stopwords", "s", "", "Stopword file (plain text or YAML)")

	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	stops := stoplist.New()
	if tokenizeStopwords != "" {
		if err := stops.LoadFile(tokenizeStopwords); err != nil {
			return err
		}
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	tokens := ingest.NewTokenizer(stops).Tokenize(string(data))
	if len(tokens) == 0 {
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, "\n"))
	return err
}
