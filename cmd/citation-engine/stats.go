// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/pipeline"
	"github.com/pdiddy/citation-engine/internal/render"
	"github.com/pdiddy/citation-engine/internal/style"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Analyze a reference list without formatting it",
	Long: `Stats resolves and fetches a reference list like format does, then
prints only the aggregate analysis: journal, author and year frequency
tables plus the recency and frequent-author warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	addPipelineFlags(statsCmd)
	statsCmd.Flags().Bool("json", false, "emit the summary as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	lines, err := readLines(args)
	if err != nil {
		return err
	}

	cfg := pipelineConfig(cmd)
	p, err := pipeline.New(cfg, style.Config{Variant: style.Vancouver}, printProgress)
	if err != nil {
		return err
	}
	defer p.Close()

	result := p.Run(context.Background(), lines, true)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Summary)
	}
	return render.Statistics(os.Stdout, result.Summary)
}
