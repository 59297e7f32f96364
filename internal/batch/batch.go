// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch fetches metadata for many DOIs concurrently.
//
// Work runs in two phases: a wide first pass over every DOI, then a narrower
// retry pass over only the failures. Results are written into an
// index-aligned slice so input order survives arbitrary completion order.
// A null result after both phases means the DOI could not be fetched; the
// formatter turns that into a per-reference error entry downstream.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// Fetcher resolves a DOI to metadata over the network.
type Fetcher interface {
	ByDOI(ctx context.Context, doi string) (*types.Metadata, error)
}

// MetadataCache is the subset of the cache store the orchestrator needs.
type MetadataCache interface {
	Get(doi string) (*types.Metadata, bool)
	Set(doi string, md *types.Metadata)
}

// Progress is a snapshot emitted after every task completion.
type Progress struct {
	Completed int
	Total     int
	Phase     int
	Errors    int
	Remaining time.Duration
}

// ProgressFunc consumes Progress snapshots. May be nil.
type ProgressFunc func(Progress)

// Orchestrator coordinates cache lookups and concurrent fetches.
type Orchestrator struct {
	fetcher  Fetcher
	cache    MetadataCache
	cfg      types.BatchConfig
	progress ProgressFunc
}

// New returns an Orchestrator. cache and progress may be nil.
func New(fetcher Fetcher, cache MetadataCache, cfg types.BatchConfig, progress ProgressFunc) *Orchestrator {
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 3
	}
	if cfg.RetryWorkers <= 0 {
		cfg.RetryWorkers = 2
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 30 * time.Second
	}
	return &Orchestrator{fetcher: fetcher, cache: cache, cfg: cfg, progress: progress}
}

// ResolveBatch fetches metadata for every DOI and returns results aligned by
// input index. Entries that fail both phases are nil. Successful fetches are
// written to the cache; already-successful DOIs are never re-fetched, so the
// total number of fetch calls is at most len(dois) plus the Phase-1 failure
// count.
func (o *Orchestrator) ResolveBatch(ctx context.Context, dois []string) []*types.Metadata {
	results := make([]*types.Metadata, len(dois))
	if len(dois) == 0 {
		return results
	}

	tracker := &progressTracker{
		total:   len(dois),
		started: time.Now(),
		report:  o.progress,
		phase:   1,
	}

	all := make([]int, len(dois))
	for i := range dois {
		all[i] = i
	}
	o.runPhase(ctx, dois, results, all, o.cfg.FetchWorkers, tracker)

	var failed []int
	for _, i := range all {
		if results[i] == nil {
			failed = append(failed, i)
		}
	}
	if len(failed) == 0 {
		return results
	}

	logrus.WithField("count", len(failed)).Debug("retrying failed fetches")
	tracker.startRetryPhase(len(failed))
	o.runPhase(ctx, dois, results, failed, o.cfg.RetryWorkers, tracker)

	return results
}

// runPhase processes the given indices through a bounded worker pool.
func (o *Orchestrator) runPhase(ctx context.Context, dois []string, results []*types.Metadata, indices []int, workers int, tracker *progressTracker) {
	if workers > len(indices) {
		workers = len(indices)
	}

	tasks := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				results[i] = o.fetchOne(ctx, dois[i])
				tracker.complete(results[i] == nil)
			}
		}()
	}

	for _, i := range indices {
		tasks <- i
	}
	close(tasks)
	wg.Wait()
}

// fetchOne resolves a single DOI: cache first, then the fetcher under the
// per-task timeout. Returns nil on any failure.
func (o *Orchestrator) fetchOne(ctx context.Context, doi string) *types.Metadata {
	if o.cache != nil {
		if md, ok := o.cache.Get(doi); ok {
			return md
		}
	}

	taskCtx, cancel := context.WithTimeout(ctx, o.cfg.TaskTimeout)
	defer cancel()

	md, err := o.fetcher.ByDOI(taskCtx, doi)
	if err != nil {
		logrus.WithError(err).WithField("doi", doi).Debug("fetch failed")
		return nil
	}
	if o.cache != nil {
		o.cache.Set(doi, md)
	}
	return md
}

// progressTracker serializes progress updates from concurrent workers.
// Completed and Total reset between phases so a consumer can render each
// phase as its own bar.
type progressTracker struct {
	mu        sync.Mutex
	completed int
	total     int
	phase     int
	errors    int
	started   time.Time
	report    ProgressFunc
}

func (t *progressTracker) complete(failed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	if failed {
		t.errors++
	}
	if t.report == nil {
		return
	}

	var remaining time.Duration
	if t.completed > 0 && t.completed < t.total {
		elapsed := time.Since(t.started)
		remaining = elapsed / time.Duration(t.completed) * time.Duration(t.total-t.completed)
		if remaining < 0 {
			remaining = 0
		}
	}
	t.report(Progress{
		Completed: t.completed,
		Total:     t.total,
		Phase:     t.phase,
		Errors:    t.errors,
		Remaining: remaining,
	})
}

func (t *progressTracker) startRetryPhase(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = 2
	t.completed = 0
	t.total = total
	t.started = time.Now()
}
