// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-engine/internal/resolve"
	"github.com/pdiddy/citation-engine/internal/style"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// stubFetcher serves metadata from a fixed map and records call counts.
type stubFetcher struct {
	mu      sync.Mutex
	works   map[string]*types.Metadata
	byDOI   int
	queries []string
}

func (s *stubFetcher) ByDOI(_ context.Context, doi string) (*types.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byDOI++
	if md, ok := s.works[doi]; ok {
		return md, nil
	}
	return nil, fmt.Errorf("unknown DOI %s", doi)
}

func (s *stubFetcher) Bibliographic(_ context.Context, text string) ([]resolve.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, text)
	return nil, nil
}

var graphene = &types.Metadata{
	Authors: []types.Author{
		{Given: "Daniel R.", Family: "Dreyer"},
		{Given: "Sungjin", Family: "Park"},
		{Given: "Christopher W.", Family: "Bielawski"},
		{Given: "Rodney S.", Family: "Ruoff"},
	},
	Title:   "The chemistry of graphene oxide",
	Journal: "Chemical Society Reviews",
	Year:    2010,
	Volume:  "39",
	Issue:   "1",
	Pages:   "228-240",
	DOI:     "10.1039/B917103G",
}

func newTestPipeline(t *testing.T, f Fetcher, styleCfg style.Config) *Pipeline {
	t.Helper()
	p, err := NewWithCollaborators(types.PipelineConfig{Language: "en"}, styleCfg, f, nil, nil)
	require.NoError(t, err)
	return p
}

func TestRunEndToEnd(t *testing.T) {
	f := &stubFetcher{works: map[string]*types.Metadata{"10.1039/B917103G": graphene}}
	p := newTestPipeline(t, f, style.Config{Variant: style.CTA})

	lines := []string{
		"REFERENCES",
		"",
		"Dreyer DR, Park S, Bielawski CW, Ruoff RS. The chemistry of graphene oxide. Chem Soc Rev. 2010;39(1):228-40. doi:10.1039/B917103G",
		"A short fragment",
		"See https://doi.org/10.1039/B917103G for details.",
	}
	res := p.Run(context.Background(), lines, false)

	require.Len(t, res.References, 4)

	// Header passes through untouched.
	assert.Equal(t, "REFERENCES", res.References[0].Spans[0].Text)
	assert.False(t, res.References[0].IsError)

	// Resolved reference formats via the template.
	want := "Dreyer DR, Park S, Bielawski CW, Ruoff RS. The chemistry of graphene oxide. Chem Soc Rev 2010;39(1):228–40. doi:10.1039/B917103G"
	assert.Equal(t, want, plain(res.References[1].Spans))

	// Unresolvable fragment becomes a flagged entry.
	assert.True(t, res.References[2].IsError)

	// Same DOI in a different textual form is a duplicate of the first.
	assert.Equal(t, 1, res.Duplicates[3])

	// The shared DOI was fetched exactly once.
	assert.Equal(t, 1, f.byDOI)

	assert.Equal(t, 4, res.Summary.TotalReferences)
	assert.Equal(t, 2, res.Summary.Resolved)
	assert.Equal(t, 1, res.Summary.Errors)
	assert.Equal(t, 1, res.Summary.Duplicates)
	assert.Equal(t, 1, res.Summary.UniqueDOIs)
}

func plain(spans []types.StyledSpan) string {
	var out string
	for _, s := range spans {
		out += s.Text
	}
	return out
}

func TestRunFetchFailureBecomesError(t *testing.T) {
	f := &stubFetcher{works: map[string]*types.Metadata{}}
	p := newTestPipeline(t, f, style.Config{Variant: style.Vancouver})

	res := p.Run(context.Background(), []string{"doi:10.1000/missing"}, false)
	require.Len(t, res.References, 1)
	assert.True(t, res.References[0].IsError)
	// Two fetch attempts: phase 1 and the retry phase.
	assert.Equal(t, 2, f.byDOI)
}

func TestRunRussianMessages(t *testing.T) {
	f := &stubFetcher{}
	p, err := NewWithCollaborators(types.PipelineConfig{Language: "ru"}, style.Config{Variant: style.APA}, f, nil, nil)
	require.NoError(t, err)

	res := p.Run(context.Background(), []string{"too short"}, false)
	require.Len(t, res.References, 1)
	assert.Contains(t, plain(res.References[0].Spans), "DOI вручную")
}

func TestRunHeadersNeverHashedOrFetched(t *testing.T) {
	f := &stubFetcher{}
	p := newTestPipeline(t, f, style.Config{Variant: style.Vancouver})

	res := p.Run(context.Background(), []string{"References", "Bibliography"}, false)
	assert.Empty(t, res.Duplicates)
	assert.Equal(t, 0, f.byDOI)
	assert.Empty(t, f.queries)
}

func TestRunInvalidStyleConfig(t *testing.T) {
	_, err := NewWithCollaborators(types.PipelineConfig{}, style.Config{Variant: style.Custom}, &stubFetcher{}, nil, nil)
	assert.Error(t, err)
}
