// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/batch"
	"github.com/pdiddy/citation-engine/internal/locale"
	"github.com/pdiddy/citation-engine/internal/pipeline"
	"github.com/pdiddy/citation-engine/internal/render"
	"github.com/pdiddy/citation-engine/internal/style"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Format a reference list in a citation style",
	Long: `Format reads one reference per line from a file (or stdin), resolves
each to a DOI, fetches metadata, and prints the formatted citations.
Section headers pass through unchanged; unresolvable lines are flagged.

The style is one of the built-in presets (vancouver, ama, apa, acs, rsc,
cta, ieee, nature, harvard, chicago) or a custom layout loaded from a YAML
file via --custom-style.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	addPipelineFlags(formatCmd)
	formatCmd.Flags().String("style", "vancouver", "preset citation style")
	formatCmd.Flags().String("custom-style", "", "YAML file describing a custom style (overrides --style)")
	formatCmd.Flags().String("numbering", "dot", "numbering style: dot, paren, bracket, parens, plain, none")
	formatCmd.Flags().Bool("json", false, "emit the full report as JSON")
	formatCmd.Flags().Bool("preview", false, "render hyperlinks as plain text")
	formatCmd.Flags().Bool("stats", false, "append the statistics summary")

	rootCmd.AddCommand(formatCmd)
}

// styleConfig resolves the style flags into a validated Config.
func styleConfig(cmd *cobra.Command) (style.Config, style.NumberingStyle, error) {
	numberingFlag, _ := cmd.Flags().GetString("numbering")
	numbering, err := style.ParseNumberingStyle(numberingFlag)
	if err != nil {
		return style.Config{}, 0, err
	}

	if customPath, _ := cmd.Flags().GetString("custom-style"); customPath != "" {
		cfg, err := style.LoadConfig(customPath)
		if err != nil {
			return style.Config{}, 0, err
		}
		return cfg, numbering, nil
	}

	preset, _ := cmd.Flags().GetString("style")
	variant, err := style.ParseVariant(preset)
	if err != nil {
		return style.Config{}, 0, err
	}
	if variant == style.Custom {
		return style.Config{}, 0, fmt.Errorf("the custom style requires --custom-style")
	}
	return style.Config{Variant: variant}, numbering, nil
}

// printProgress writes batch progress snapshots to stderr on one line.
func printProgress(p batch.Progress) {
	fmt.Fprintf(os.Stderr, "\r[phase %d] %d/%d fetched, %d errors, ~%s left ",
		p.Phase, p.Completed, p.Total, p.Errors, p.Remaining.Round(time.Second))
	if p.Completed == p.Total {
		fmt.Fprintln(os.Stderr)
	}
}

func runFormat(cmd *cobra.Command, args []string) error {
	styleCfg, numbering, err := styleConfig(cmd)
	if err != nil {
		return err
	}

	lines, err := readLines(args)
	if err != nil {
		return err
	}

	cfg := pipelineConfig(cmd)
	p, err := pipeline.New(cfg, styleCfg, printProgress)
	if err != nil {
		return err
	}
	defer p.Close()

	preview, _ := cmd.Flags().GetBool("preview")
	result := p.Run(context.Background(), lines, preview)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return render.JSON(os.Stdout, result.References, result.Duplicates, result.Summary)
	}

	lang := locale.Parse(cfg.Language)
	if err := render.References(os.Stdout, result.References, result.Duplicates, numbering, lang); err != nil {
		return err
	}
	if withStats, _ := cmd.Flags().GetBool("stats"); withStats {
		fmt.Fprintln(os.Stdout)
		return render.Statistics(os.Stdout, result.Summary)
	}
	return nil
}
