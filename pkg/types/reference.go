// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Reference is one raw input line. References exist only for the duration
// of a processing run and are discarded after formatting.
type Reference struct {
	// Index is the zero-based position of the line in the input.
	Index int `json:"index"`

	// RawText is the line exactly as received.
	RawText string `json:"raw_text"`
}

// Author is a single author of a work, in source order.
type Author struct {
	// Given holds the given name(s), e.g. "Daniel R".
	Given string `json:"given" yaml:"given"`

	// Family holds the family name, e.g. "Dreyer".
	Family string `json:"family" yaml:"family"`
}

// Metadata is the bibliographic record for a work, keyed by DOI.
// A Metadata value is immutable once fetched.
type Metadata struct {
	Authors []Author `json:"authors" yaml:"authors"`
	Title   string   `json:"title" yaml:"title"`
	Journal string   `json:"journal" yaml:"journal"`

	// Year is the publication year, 0 if unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	Volume        string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue         string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages         string `json:"pages,omitempty" yaml:"pages,omitempty"`
	ArticleNumber string `json:"article_number,omitempty" yaml:"article_number,omitempty"`
	DOI           string `json:"doi" yaml:"doi"`
}

// StyledSpan is the atomic unit of formatted output: a text fragment with
// emphasis and hyperlink attributes. Sinks render spans in order.
type StyledSpan struct {
	Text      string `json:"text"`
	Italic    bool   `json:"italic,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Separator bool   `json:"separator,omitempty"`

	// IsHyperlink marks the span as a link; HyperlinkTarget is the URL.
	IsHyperlink     bool   `json:"is_hyperlink,omitempty"`
	HyperlinkTarget string `json:"hyperlink_target,omitempty"`
}

// FormattedReference is the formatted output for a single reference.
// When IsError is true the spans carry a human-readable error message and
// Metadata is nil.
type FormattedReference struct {
	Spans    []StyledSpan `json:"spans"`
	IsError  bool         `json:"is_error,omitempty"`
	Metadata *Metadata    `json:"metadata,omitempty"`
}
