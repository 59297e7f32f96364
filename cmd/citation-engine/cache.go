// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/cache"
	"github.com/pdiddy/citation-engine/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the metadata cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache entry counts and age",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached metadata",
	RunE:  runCacheClear,
}

var cacheClearExpiredCmd = &cobra.Command{
	Use:   "clear-expired",
	Short: "Remove cached metadata past its TTL",
	RunE:  runCacheClearExpired,
}

func init() {
	for _, cmd := range []*cobra.Command{cacheInfoCmd, cacheClearCmd, cacheClearExpiredCmd} {
		cmd.Flags().String("cache", defaultCachePath, "metadata cache database path")
		cmd.Flags().Duration("ttl", defaultTTL, "cache entry time-to-live")
		cacheCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(cacheCmd)
}

func openCache(cmd *cobra.Command) (*cache.Store, error) {
	path, _ := cmd.Flags().GetString("cache")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	return cache.Open(types.CacheConfig{Path: path, TTL: ttl})
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	s, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.Summary()
	if err != nil {
		return err
	}
	fmt.Printf("Entries: %d (%d past TTL)\n", st.Entries, st.Expired)
	if !st.Oldest.IsZero() {
		fmt.Printf("Oldest entry: %s\n", st.Oldest.Format(time.RFC3339))
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	s, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Clear(); err != nil {
		return err
	}
	fmt.Println("Cache cleared.")
	return nil
}

func runCacheClearExpired(cmd *cobra.Command, args []string) error {
	s, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.ClearExpired()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d expired entries.\n", n)
	return nil
}
