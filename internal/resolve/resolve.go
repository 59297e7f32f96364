// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve discovers a DOI for a free-text reference string.
//
// Strategies run in strict order and the first success wins. The order is
// load-bearing: explicit extraction is exact and free, bibliographic search
// is fuzzy and costs a network round trip. Keep the list explicit rather
// than hiding the precedence behind polymorphism.
package resolve

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// minSearchLength is the minimum length of the reference text (with any DOI
// substrings removed) before the bibliographic-search strategy is attempted.
// Shorter fragments produce noisy queries and bogus matches.
const minSearchLength = 30

// doiBody matches the registrant and suffix parts of a DOI.
const doiBody = `10\.\d{4,9}/[-._;()/:A-Za-z0-9]+`

// extractionPatterns are tried in order. URL and prefixed forms come before
// the bare pattern so that the capture excludes the prefix.
var extractionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://(?:dx\.)?doi\.org/(` + doiBody + `)`),
	regexp.MustCompile(`doi:\s*(` + doiBody + `)`),
	regexp.MustCompile(`DOI:\s*(` + doiBody + `)`),
	regexp.MustCompile(`(` + doiBody + `)`),
}

// anyDOIPattern matches every textual DOI form, prefix included. Used to
// strip DOIs out of the text before measuring it for the search strategy.
var anyDOIPattern = regexp.MustCompile(
	`(?:https?://(?:dx\.)?doi\.org/|doi:\s*|DOI:\s*)?` + doiBody)

// SearchResult is one ranked hit from a bibliographic search.
type SearchResult struct {
	DOI   string
	Title string
	Score float64
}

// Searcher is the bibliographic-search capability of the metadata fetcher.
type Searcher interface {
	Bibliographic(ctx context.Context, text string) ([]SearchResult, error)
}

// Resolver finds DOIs for reference strings. The zero value resolves by
// extraction only; attach a Searcher to enable the search strategy.
type Resolver struct {
	searcher Searcher
}

// New returns a Resolver backed by the given Searcher (may be nil).
func New(searcher Searcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// FindDOI returns the DOI for the reference text, or "" if no strategy
// succeeds. The caller substitutes an instructive message for unresolved
// references; this function never errors.
func (r *Resolver) FindDOI(ctx context.Context, text string) string {
	// Strategy 1: explicit extraction.
	if doi := ExtractDOI(text); doi != "" {
		return doi
	}
	// Strategy 2: bibliographic search.
	if doi := r.searchDOI(ctx, text); doi != "" {
		return doi
	}
	// Strategy 3: reserved for future resolvers (e.g. PubMed ID lookup).
	return ""
}

// ExtractDOI pulls a DOI out of text using the ordered pattern list.
// Trailing sentence punctuation is stripped from the match.
func ExtractDOI(text string) string {
	trimmed := strings.TrimSpace(text)

	// A line that is nothing but a DOI (optionally prefixed) resolves
	// directly, even when it would be too short for any other strategy.
	if anyDOIPattern.FindString(trimmed) == trimmed {
		for _, re := range extractionPatterns {
			if m := re.FindStringSubmatch(trimmed); m != nil {
				return trimTrailingPunct(m[1])
			}
		}
	}

	for _, re := range extractionPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return trimTrailingPunct(m[1])
		}
	}
	return ""
}

// searchDOI queries the bibliographic search backend when the text is long
// enough to form a meaningful query.
func (r *Resolver) searchDOI(ctx context.Context, text string) string {
	if r.searcher == nil {
		return ""
	}
	stripped := strings.TrimSpace(anyDOIPattern.ReplaceAllString(text, ""))
	if len(stripped) < minSearchLength {
		return ""
	}

	results, err := r.searcher.Bibliographic(ctx, stripped)
	if err != nil {
		return ""
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	for _, res := range results {
		if res.DOI != "" {
			return res.DOI
		}
	}
	return ""
}

// trimTrailingPunct strips sentence punctuation that the bare DOI pattern
// inevitably swallows ("...10.1039/B917103G.").
func trimTrailingPunct(doi string) string {
	return strings.TrimRight(doi, ".,;:")
}
