// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-engine/internal/dedup"
	"github.com/pdiddy/citation-engine/internal/locale"
	"github.com/pdiddy/citation-engine/internal/stats"
	"github.com/pdiddy/citation-engine/internal/style"
	"github.com/pdiddy/citation-engine/pkg/types"
)

func TestSpanMarkers(t *testing.T) {
	tests := []struct {
		span types.StyledSpan
		want string
	}{
		{types.StyledSpan{Text: "plain"}, "plain"},
		{types.StyledSpan{Text: "Chem. Soc. Rev.", Italic: true}, "*Chem. Soc. Rev.*"},
		{types.StyledSpan{Text: "2010", Bold: true}, "**2010**"},
		{types.StyledSpan{Text: "39", Italic: true, Bold: true}, "***39***"},
		{types.StyledSpan{Text: "doi:10.1000/x", IsHyperlink: true, HyperlinkTarget: "https://doi.org/10.1000/x"}, "doi:10.1000/x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Span(tt.span))
	}
}

func TestReferencesNumberingAndDuplicates(t *testing.T) {
	refs := []types.FormattedReference{
		{Spans: []types.StyledSpan{{Text: "First reference"}}},
		{Spans: []types.StyledSpan{{Text: "Second reference"}}},
		{Spans: []types.StyledSpan{{Text: "First reference"}}},
	}
	dupes := dedup.DuplicateMap{2: 0}

	var buf bytes.Buffer
	require.NoError(t, References(&buf, refs, dupes, style.NumberDot, locale.English))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1. First reference", lines[0])
	assert.Equal(t, "2. Second reference", lines[1])
	assert.Equal(t, "3. First reference [duplicate of reference 1]", lines[2])
}

func TestReferencesNoNumbering(t *testing.T) {
	refs := []types.FormattedReference{
		{Spans: []types.StyledSpan{{Text: "Only reference"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, References(&buf, refs, nil, style.NumberNone, locale.English))
	assert.Equal(t, "Only reference\n", buf.String())
}

func TestReferencesRussianAnnotation(t *testing.T) {
	refs := []types.FormattedReference{
		{Spans: []types.StyledSpan{{Text: "a"}}},
		{Spans: []types.StyledSpan{{Text: "a"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, References(&buf, refs, dedup.DuplicateMap{1: 0}, style.NumberBracket, locale.Russian))
	assert.Contains(t, buf.String(), "дубликат ссылки 1")
}

func TestStatisticsOutput(t *testing.T) {
	s := stats.Summary{
		TotalReferences: 3,
		Resolved:        2,
		Errors:          1,
		UniqueDOIs:      2,
		Journals: []stats.Entry{
			{Name: "Chemical Society Reviews", Count: 2, Percent: 100},
		},
		NeedsMoreRecentReferences: true,
	}
	var buf bytes.Buffer
	require.NoError(t, Statistics(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "References: 3 (resolved 2, errors 1, duplicates 0)")
	assert.Contains(t, out, "Unique DOIs: 2")
	assert.Contains(t, out, "last 4 years")
	assert.Contains(t, out, "Chemical Society Reviews")
	assert.Contains(t, out, "100.0")
}

func TestJSONReport(t *testing.T) {
	refs := []types.FormattedReference{
		{Spans: []types.StyledSpan{{Text: "First", Italic: true}}},
		{Spans: []types.StyledSpan{{Text: "error entry"}}, IsError: true},
		{Spans: []types.StyledSpan{{Text: "First", Italic: true}}},
	}
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, refs, dedup.DuplicateMap{2: 0}, stats.Summary{TotalReferences: 3}))

	var got report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.References, 3)
	assert.Equal(t, 1, got.References[0].Number)
	assert.Equal(t, "*First*", got.References[0].Text)
	assert.True(t, got.References[1].IsError)
	assert.Equal(t, 1, got.References[2].DuplicateOf)
	assert.Equal(t, 3, got.Statistics.TotalReferences)
}
