// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-engine/internal/dedup"
	"github.com/pdiddy/citation-engine/pkg/types"
)

func pinYear(t *testing.T, year int) {
	t.Helper()
	timeNow = func() time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { timeNow = time.Now })
}

func ref(md *types.Metadata) types.FormattedReference {
	return types.FormattedReference{Metadata: md}
}

func TestComputeCounts(t *testing.T) {
	pinYear(t, 2026)
	refs := []types.FormattedReference{
		ref(&types.Metadata{
			Authors: []types.Author{{Given: "Daniel R.", Family: "Dreyer"}},
			Journal: "Chemical Society Reviews", Year: 2010, DOI: "10.1000/a",
		}),
		ref(&types.Metadata{
			Authors: []types.Author{{Given: "D.", Family: "Dreyer"}},
			Journal: "Chemical Society Reviews", Year: 2024, DOI: "10.1000/b",
		}),
		{IsError: true},
		ref(nil),
	}
	s := Compute(refs, dedup.DuplicateMap{})

	assert.Equal(t, 4, s.TotalReferences)
	assert.Equal(t, 2, s.Resolved)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 0, s.Duplicates)
	assert.Equal(t, 2, s.UniqueDOIs)

	require.Len(t, s.Journals, 1)
	assert.Equal(t, Entry{Name: "Chemical Society Reviews", Count: 2, Percent: 100}, s.Journals[0])

	// Given-name variants merge under "family + first initial".
	require.Len(t, s.Authors, 1)
	assert.Equal(t, "Dreyer D", s.Authors[0].Name)
	assert.Equal(t, 2, s.Authors[0].Count)
}

func TestAuthorKeyCyrillicInitial(t *testing.T) {
	pinYear(t, 2026)
	refs := []types.FormattedReference{
		ref(&types.Metadata{
			Authors: []types.Author{{Given: "Юрий", Family: "Иванов"}},
			DOI:     "10.1000/a", Year: 2024,
		}),
		ref(&types.Metadata{
			Authors: []types.Author{{Given: "юрий а.", Family: "Иванов"}},
			DOI:     "10.1000/b", Year: 2024,
		}),
	}
	s := Compute(refs, dedup.DuplicateMap{})

	// The initial is the first rune, uppercased, not the first byte.
	require.Len(t, s.Authors, 1)
	assert.Equal(t, "Иванов Ю", s.Authors[0].Name)
	assert.True(t, utf8.ValidString(s.Authors[0].Name))
	assert.Equal(t, 2, s.Authors[0].Count)
}

func TestPercentagesUseUniqueDOIDenominator(t *testing.T) {
	pinYear(t, 2026)
	// Three occurrences of one journal across two distinct DOIs: 150%.
	refs := []types.FormattedReference{
		ref(&types.Metadata{Journal: "Nature", DOI: "10.1000/a", Year: 2024}),
		ref(&types.Metadata{Journal: "Nature", DOI: "10.1000/b", Year: 2024}),
		ref(&types.Metadata{Journal: "Nature", DOI: "10.1000/a", Year: 2024}),
	}
	s := Compute(refs, dedup.DuplicateMap{})
	assert.Equal(t, 2, s.UniqueDOIs)
	require.Len(t, s.Journals, 1)
	assert.InDelta(t, 150.0, s.Journals[0].Percent, 0.001)
}

func TestYearTableSpansCurrentDownTo2010(t *testing.T) {
	pinYear(t, 2026)
	refs := []types.FormattedReference{
		ref(&types.Metadata{DOI: "10.1000/a", Year: 2010}),
		ref(&types.Metadata{DOI: "10.1000/b", Year: 2026}),
		// Years before the floor are counted nowhere in the table.
		ref(&types.Metadata{DOI: "10.1000/c", Year: 1998}),
	}
	s := Compute(refs, dedup.DuplicateMap{})

	require.Len(t, s.Years, 17)
	assert.Equal(t, 2026, s.Years[0].Year)
	assert.Equal(t, 2010, s.Years[len(s.Years)-1].Year)
	assert.Equal(t, 1, s.Years[0].Count)
	assert.Equal(t, 1, s.Years[len(s.Years)-1].Count)
	// Zero-count years still get rows.
	assert.Equal(t, 0, s.Years[1].Count)
}

func TestTopEntriesOrderAndLimit(t *testing.T) {
	pinYear(t, 2026)
	var refs []types.FormattedReference
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("Journal %02d", i)
		n := 1
		if i < 3 {
			n = 5 // three clear leaders
		}
		for j := 0; j < n; j++ {
			refs = append(refs, ref(&types.Metadata{
				Journal: name, Year: 2024,
				DOI: fmt.Sprintf("10.1000/%d-%d", i, j),
			}))
		}
	}
	s := Compute(refs, dedup.DuplicateMap{})

	assert.Len(t, s.Journals, 20)
	assert.Equal(t, "Journal 00", s.Journals[0].Name)
	assert.Equal(t, 5, s.Journals[0].Count)
	// Ties break alphabetically.
	assert.Equal(t, "Journal 03", s.Journals[3].Name)
	assert.Equal(t, "Journal 04", s.Journals[4].Name)
}

func TestNeedsMoreRecentReferences(t *testing.T) {
	pinYear(t, 2026)

	old := []types.FormattedReference{
		ref(&types.Metadata{DOI: "10.1000/a", Year: 2011}),
		ref(&types.Metadata{DOI: "10.1000/b", Year: 2012}),
		ref(&types.Metadata{DOI: "10.1000/c", Year: 2013}),
		ref(&types.Metadata{DOI: "10.1000/d", Year: 2014}),
		ref(&types.Metadata{DOI: "10.1000/e", Year: 2015}),
	}
	assert.True(t, Compute(old, dedup.DuplicateMap{}).NeedsMoreRecentReferences)

	fresh := append(old[:4:4], ref(&types.Metadata{DOI: "10.1000/f", Year: 2025}))
	assert.False(t, Compute(fresh, dedup.DuplicateMap{}).NeedsMoreRecentReferences)
}

func TestHasFrequentAuthor(t *testing.T) {
	pinYear(t, 2026)
	refs := []types.FormattedReference{
		ref(&types.Metadata{
			Authors: []types.Author{{Given: "A", Family: "Smith"}},
			DOI:     "10.1000/a", Year: 2024,
		}),
		ref(&types.Metadata{
			Authors: []types.Author{{Given: "A", Family: "Smith"}},
			DOI:     "10.1000/b", Year: 2024,
		}),
		ref(&types.Metadata{
			Authors: []types.Author{{Given: "B", Family: "Jones"}},
			DOI:     "10.1000/c", Year: 2024,
		}),
	}
	// Smith appears on 2 of 3 unique DOIs: 66% > 30%.
	assert.True(t, Compute(refs, dedup.DuplicateMap{}).HasFrequentAuthor)

	solo := refs[:1]
	// A single author on a single DOI is 100%, still "frequent".
	assert.True(t, Compute(solo, dedup.DuplicateMap{}).HasFrequentAuthor)
}

func TestEmptyRunProducesNoFlags(t *testing.T) {
	pinYear(t, 2026)
	s := Compute(nil, dedup.DuplicateMap{})
	assert.Zero(t, s.TotalReferences)
	assert.False(t, s.NeedsMoreRecentReferences)
	assert.False(t, s.HasFrequentAuthor)
	assert.Empty(t, s.Journals)
}

func TestDuplicateCountFromMap(t *testing.T) {
	pinYear(t, 2026)
	s := Compute(nil, dedup.DuplicateMap{3: 1, 5: 1})
	assert.Equal(t, 2, s.Duplicates)
}
