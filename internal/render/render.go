// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes formatted references and statistics to plain-text
// and JSON sinks. Emphasis renders as wrapping markers (*italic*, **bold**)
// since a terminal carries no rich attributes; hyperlink targets are
// dropped in favor of the span text.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pdiddy/citation-engine/internal/dedup"
	"github.com/pdiddy/citation-engine/internal/locale"
	"github.com/pdiddy/citation-engine/internal/stats"
	"github.com/pdiddy/citation-engine/internal/style"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// Span renders one styled span as marked-up text.
func Span(s types.StyledSpan) string {
	text := s.Text
	if s.Bold {
		text = "**" + text + "**"
	}
	if s.Italic {
		text = "*" + text + "*"
	}
	return text
}

// Spans renders a span list as one line of marked-up text.
func Spans(spans []types.StyledSpan) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(Span(s))
	}
	return b.String()
}

// References writes one line per formatted reference: numbering prefix,
// span text, and the duplicate annotation where one applies.
func References(w io.Writer, refs []types.FormattedReference, dupes dedup.DuplicateMap, numbering style.NumberingStyle, lang locale.Language) error {
	for i, ref := range refs {
		line := style.NumberPrefix(numbering, i+1) + Spans(ref.Spans)
		if canonical, ok := dupes[i]; ok {
			line += " [" + locale.DuplicateOf(lang, canonical+1) + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing reference %d: %w", i+1, err)
		}
	}
	return nil
}

// Statistics writes the run summary and the frequency tables.
func Statistics(w io.Writer, s stats.Summary) error {
	fmt.Fprintf(w, "References: %d (resolved %d, errors %d, duplicates %d)\n",
		s.TotalReferences, s.Resolved, s.Errors, s.Duplicates)
	fmt.Fprintf(w, "Unique DOIs: %d\n", s.UniqueDOIs)
	if s.NeedsMoreRecentReferences {
		fmt.Fprintln(w, "Warning: fewer than 20% of references are from the last 4 years")
	}
	if s.HasFrequentAuthor {
		fmt.Fprintln(w, "Warning: a single author appears in more than 30% of references")
	}

	if len(s.Journals) > 0 {
		fmt.Fprintln(w, "\nJournals:")
		entryTable(w, s.Journals, "Journal")
	}
	if len(s.Authors) > 0 {
		fmt.Fprintln(w, "\nAuthors:")
		entryTable(w, s.Authors, "Author")
	}
	if len(s.Years) > 0 {
		fmt.Fprintln(w, "\nYears:")
		yearTable(w, s.Years)
	}
	return nil
}

func entryTable(w io.Writer, entries []stats.Entry, label string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{label, "Count", "%"})
	for _, e := range entries {
		table.Append([]string{e.Name, strconv.Itoa(e.Count), fmt.Sprintf("%.1f", e.Percent)})
	}
	table.Render()
}

func yearTable(w io.Writer, years []stats.YearEntry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Year", "Count", "%"})
	for _, y := range years {
		table.Append([]string{strconv.Itoa(y.Year), strconv.Itoa(y.Count), fmt.Sprintf("%.1f", y.Percent)})
	}
	table.Render()
}

// report is the JSON export shape.
type report struct {
	References []reportReference `json:"references"`
	Statistics stats.Summary     `json:"statistics"`
}

type reportReference struct {
	Number      int                `json:"number"`
	Text        string             `json:"text"`
	Spans       []types.StyledSpan `json:"spans"`
	IsError     bool               `json:"isError"`
	DuplicateOf int                `json:"duplicateOf,omitempty"`
}

// JSON writes the full run artifact as indented JSON.
func JSON(w io.Writer, refs []types.FormattedReference, dupes dedup.DuplicateMap, summary stats.Summary) error {
	out := report{Statistics: summary}
	for i, ref := range refs {
		r := reportReference{
			Number:  i + 1,
			Text:    Spans(ref.Spans),
			Spans:   ref.Spans,
			IsError: ref.IsError,
		}
		if canonical, ok := dupes[i]; ok {
			r.DuplicateOf = canonical + 1
		}
		out.References = append(out.References, r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
