// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-engine/internal/secrets"
	"github.com/pdiddy/citation-engine/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "citation-engine/0.1"
	defaultCachePath = "cache/metadata.db"
	defaultTTL       = 7 * 24 * time.Hour
)

// addPipelineFlags registers the flags shared by every command that runs
// the processing pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("language", "en", "output language for error and duplicate messages (en, ru)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().String("mailto", "", "contact email for the Crossref polite pool (default: .secrets/crossref-email)")
	cmd.Flags().String("plus-token", "", "Crossref Plus API token (default: .secrets/crossref-plus-token)")
	cmd.Flags().Float64("rate", 5, "Crossref requests per second")
	cmd.Flags().String("cache", defaultCachePath, "metadata cache database path")
	cmd.Flags().Duration("ttl", 0, "cache entry time-to-live (default 168h)")
	cmd.Flags().Int("workers", 3, "fetch worker count")
	cmd.Flags().Int("retry-workers", 2, "retry phase worker count")
}

// pipelineConfig assembles the PipelineConfig from flags, the viper config
// file, and loaded secrets, in that order of precedence.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	language, _ := cmd.Flags().GetString("language")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	mailto, _ := cmd.Flags().GetString("mailto")
	if mailto == "" {
		mailto = viper.GetString("mailto")
	}
	plusToken, _ := cmd.Flags().GetString("plus-token")
	rate, _ := cmd.Flags().GetFloat64("rate")
	cachePath, _ := cmd.Flags().GetString("cache")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl == 0 {
		ttl = defaultTTL
	}
	workers, _ := cmd.Flags().GetInt("workers")
	retryWorkers, _ := cmd.Flags().GetInt("retry-workers")

	return types.PipelineConfig{
		Language: language,
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			MailTo:            secretDefault(secrets.KeyEmail, mailto),
			PlusToken:         secretDefault(secrets.KeyPlusToken, plusToken),
			RequestsPerSecond: rate,
		},
		Cache: types.CacheConfig{
			Path: cachePath,
			TTL:  ttl,
		},
		Batch: types.BatchConfig{
			FetchWorkers: workers,
			RetryWorkers: retryWorkers,
		},
	}
}

// readLines reads the reference list from the file argument, or stdin when
// no argument is given.
func readLines(args []string) ([]string, error) {
	var r io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}
