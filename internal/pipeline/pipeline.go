// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full reference-processing sequence: classify,
// resolve, batch fetch, format, deduplicate, aggregate. Everything except
// the batch fetch is sequential; output exists only once the whole run
// completes.
package pipeline

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-engine/internal/batch"
	"github.com/pdiddy/citation-engine/internal/cache"
	"github.com/pdiddy/citation-engine/internal/classify"
	"github.com/pdiddy/citation-engine/internal/dedup"
	"github.com/pdiddy/citation-engine/internal/fetch"
	"github.com/pdiddy/citation-engine/internal/locale"
	"github.com/pdiddy/citation-engine/internal/resolve"
	"github.com/pdiddy/citation-engine/internal/stats"
	"github.com/pdiddy/citation-engine/internal/style"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// Fetcher combines the two capabilities the pipeline needs from the
// metadata backend.
type Fetcher interface {
	batch.Fetcher
	resolve.Searcher
}

// Result is the complete output artifact of one run.
type Result struct {
	References []types.FormattedReference
	Duplicates dedup.DuplicateMap
	Summary    stats.Summary
}

// Pipeline holds the wired collaborators for a processing run.
type Pipeline struct {
	resolver     *resolve.Resolver
	orchestrator *batch.Orchestrator
	formatter    style.Formatter
	store        *cache.Store
	lang         locale.Language
}

// New wires a Pipeline from configuration: Crossref client, SQLite cache,
// resolver, orchestrator and formatter. A cache that fails to open is
// logged and skipped; the run proceeds uncached.
func New(cfg types.PipelineConfig, styleCfg style.Config, progress batch.ProgressFunc) (*Pipeline, error) {
	client := fetch.NewClient(cfg.Fetch)

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		logrus.WithError(err).Warn("metadata cache unavailable, proceeding without it")
		store = nil
	}

	p, err := NewWithCollaborators(cfg, styleCfg, client, asMetadataCache(store), progress)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	p.store = store
	return p, nil
}

// asMetadataCache keeps a nil *cache.Store from becoming a non-nil
// interface value.
func asMetadataCache(s *cache.Store) batch.MetadataCache {
	if s == nil {
		return nil
	}
	return s
}

// NewWithCollaborators wires a Pipeline around explicit collaborators.
func NewWithCollaborators(cfg types.PipelineConfig, styleCfg style.Config, fetcher Fetcher, mc batch.MetadataCache, progress batch.ProgressFunc) (*Pipeline, error) {
	formatter, err := style.New(styleCfg, locale.Parse(cfg.Language))
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		resolver:     resolve.New(fetcher),
		orchestrator: batch.New(fetcher, mc, cfg.Batch, progress),
		formatter:    formatter,
		lang:         locale.Parse(cfg.Language),
	}, nil
}

// Close releases the cache store, if one was opened.
func (p *Pipeline) Close() error {
	if p.store != nil {
		return p.store.Close()
	}
	return nil
}

// Run processes raw input lines into the complete Result. Blank lines are
// dropped; section headers pass through unformatted and unhashed.
func (p *Pipeline) Run(ctx context.Context, lines []string, forPreview bool) Result {
	type entry struct {
		ref    types.Reference
		header bool
		doi    string
	}

	var entries []entry
	for _, raw := range lines {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		entries = append(entries, entry{
			ref:    types.Reference{Index: len(entries), RawText: text},
			header: classify.IsSectionHeader(text),
		})
	}

	// Resolve DOIs line by line; dedupe while preserving first-seen order.
	// The cache key is the DOI exactly as resolved.
	var order []string
	slot := make(map[string]int)
	for i := range entries {
		if entries[i].header {
			continue
		}
		doi := p.resolver.FindDOI(ctx, entries[i].ref.RawText)
		entries[i].doi = doi
		if doi == "" {
			continue
		}
		if _, ok := slot[doi]; !ok {
			slot[doi] = len(order)
			order = append(order, doi)
		}
	}

	fetched := p.orchestrator.ResolveBatch(ctx, order)

	refs := make([]types.FormattedReference, len(entries))
	for i, e := range entries {
		switch {
		case e.header:
			refs[i] = types.FormattedReference{
				Spans: []types.StyledSpan{{Text: e.ref.RawText}},
			}
		case e.doi == "":
			refs[i] = types.FormattedReference{
				Spans:   []types.StyledSpan{{Text: locale.Message(p.lang, locale.KeyUnresolved)}},
				IsError: true,
			}
		default:
			refs[i] = p.formatter.Format(fetched[slot[e.doi]], forPreview)
		}
	}

	dupes := dedup.Find(refs)
	return Result{
		References: refs,
		Duplicates: dupes,
		Summary:    stats.Compute(refs, dupes),
	}
}
