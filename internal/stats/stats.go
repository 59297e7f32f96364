// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats aggregates journal, year and author frequencies across a
// formatted reference list.
//
// Percentages use the count of distinct DOIs as the denominator while the
// numerators are raw occurrence counts, so a journal or author repeated
// across distinct DOIs can exceed 100%. That follows the upstream counting
// rule deliberately; change both together or not at all.
package stats

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/citation-engine/internal/dedup"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// timeNow is swapped out by tests to pin the year table.
var timeNow = time.Now

const (
	topLimit        = 20
	yearTableFloor  = 2010
	recentYearSpan  = 4
	recentThreshold = 20.0
	authorThreshold = 30.0
)

// Entry is one row of a frequency table.
type Entry struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// YearEntry is one row of the publication-year table.
type YearEntry struct {
	Year    int     `json:"year"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Summary holds every aggregate derived from one processing run.
type Summary struct {
	TotalReferences int `json:"totalReferences"`
	Resolved        int `json:"resolved"`
	Errors          int `json:"errors"`
	Duplicates      int `json:"duplicates"`
	UniqueDOIs      int `json:"uniqueDOIs"`

	Journals []Entry     `json:"journals"`
	Authors  []Entry     `json:"authors"`
	Years    []YearEntry `json:"years"`

	NeedsMoreRecentReferences bool `json:"needsMoreRecentReferences"`
	HasFrequentAuthor         bool `json:"hasFrequentAuthor"`
}

// authorKey identifies an author as family name plus first initial
// ("Dreyer D"), enough to merge spelling variants of the given name. The
// initial is the first rune, so Cyrillic given names key correctly.
func authorKey(a types.Author) string {
	family := strings.TrimSpace(a.Family)
	given := strings.TrimSpace(a.Given)
	if given == "" {
		return family
	}
	r, _ := utf8.DecodeRuneInString(given)
	initial := string(unicode.ToUpper(r))
	if family == "" {
		return initial
	}
	return family + " " + initial
}

// Compute builds the Summary for one run.
func Compute(refs []types.FormattedReference, dupes dedup.DuplicateMap) Summary {
	s := Summary{
		TotalReferences: len(refs),
		Duplicates:      len(dupes),
	}

	journals := make(map[string]int)
	authors := make(map[string]int)
	years := make(map[int]int)
	dois := make(map[string]bool)

	for _, ref := range refs {
		if ref.IsError {
			s.Errors++
			continue
		}
		md := ref.Metadata
		if md == nil {
			continue
		}
		s.Resolved++

		if md.DOI != "" {
			dois[strings.ToLower(md.DOI)] = true
		}
		if md.Journal != "" {
			journals[md.Journal]++
		}
		if md.Year > 0 {
			years[md.Year]++
		}
		for _, a := range md.Authors {
			if key := authorKey(a); key != "" {
				authors[key]++
			}
		}
	}

	s.UniqueDOIs = len(dois)
	s.Journals = topEntries(journals, s.UniqueDOIs)
	s.Authors = topEntries(authors, s.UniqueDOIs)
	s.Years = yearTable(years, s.UniqueDOIs)

	s.NeedsMoreRecentReferences = needsMoreRecent(years, s.UniqueDOIs)
	for _, a := range s.Authors {
		if a.Percent > authorThreshold {
			s.HasFrequentAuthor = true
			break
		}
	}
	return s
}

// topEntries converts a frequency map into its top rows, ordered by count
// descending then name ascending.
func topEntries(freq map[string]int, uniqueDOIs int) []Entry {
	entries := make([]Entry, 0, len(freq))
	for name, count := range freq {
		entries = append(entries, Entry{
			Name:    name,
			Count:   count,
			Percent: percent(count, uniqueDOIs),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > topLimit {
		entries = entries[:topLimit]
	}
	return entries
}

// yearTable spans the current year down to 2010, zero counts included.
func yearTable(years map[int]int, uniqueDOIs int) []YearEntry {
	current := timeNow().Year()
	var table []YearEntry
	for y := current; y >= yearTableFloor; y-- {
		table = append(table, YearEntry{
			Year:    y,
			Count:   years[y],
			Percent: percent(years[y], uniqueDOIs),
		})
	}
	return table
}

// needsMoreRecent reports whether the combined share of the last
// recentYearSpan years falls below the threshold.
func needsMoreRecent(years map[int]int, uniqueDOIs int) bool {
	if uniqueDOIs == 0 {
		return false
	}
	current := timeNow().Year()
	recent := 0
	for y := current; y > current-recentYearSpan; y-- {
		recent += years[y]
	}
	return percent(recent, uniqueDOIs) < recentThreshold
}

func percent(count, uniqueDOIs int) float64 {
	if uniqueDOIs == 0 {
		return 0
	}
	return float64(count) / float64(uniqueDOIs) * 100
}
