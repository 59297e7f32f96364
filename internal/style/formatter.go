// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"fmt"
	"strings"

	"github.com/pdiddy/citation-engine/internal/locale"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// Formatter renders metadata into styled spans. A nil metadata value yields
// a localized error entry with IsError set; Format never fails outright.
type Formatter interface {
	Format(md *types.Metadata, forPreview bool) types.FormattedReference
}

// New returns the Formatter for cfg: a fixed template for preset variants,
// the element-list formatter for Custom. Dispatch is by the Variant tag
// alone.
func New(cfg Config, lang locale.Language) (Formatter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Variant == Custom {
		return &customFormatter{cfg: cfg, lang: lang}, nil
	}
	tmpl, ok := presetTemplates[cfg.Variant]
	if !ok {
		return nil, fmt.Errorf("no formatter for style %s", cfg.Variant)
	}
	return &presetFormatter{tmpl: tmpl, finalPunct: presetFinalPunct[cfg.Variant], lang: lang}, nil
}

// errorEntry is the shared null-metadata result.
func errorEntry(lang locale.Language) types.FormattedReference {
	return types.FormattedReference{
		Spans:   []types.StyledSpan{{Text: locale.Message(lang, locale.KeyFetchFailed)}},
		IsError: true,
	}
}

// forPreviewSpans downgrades hyperlinks to plain text for preview surfaces
// that cannot render links.
func forPreviewSpans(spans []types.StyledSpan) []types.StyledSpan {
	out := make([]types.StyledSpan, len(spans))
	for i, s := range spans {
		s.IsHyperlink = false
		s.HyperlinkTarget = ""
		out[i] = s
	}
	return out
}

// spanBuilder accumulates styled spans. Separator spans are emitted only
// between content spans, so no two separators are ever adjacent.
type spanBuilder struct {
	spans []types.StyledSpan
}

func (b *spanBuilder) text(s string) {
	b.styled(s, false, false)
}

func (b *spanBuilder) styled(s string, italic, bold bool) {
	if s == "" {
		return
	}
	b.spans = append(b.spans, types.StyledSpan{Text: s, Italic: italic, Bold: bold})
}

func (b *spanBuilder) link(text, target string) {
	if text == "" {
		return
	}
	b.spans = append(b.spans, types.StyledSpan{Text: text, IsHyperlink: true, HyperlinkTarget: target})
}

// sep queues a separator after existing content. A separator already
// pending is replaced, never doubled. When the preceding content already
// ends with a period, a leading period on the separator is dropped, so a
// title ending in "." or dotted initials like "R. S." never produce "..".
func (b *spanBuilder) sep(s string) {
	if s == "" || len(b.spans) == 0 {
		return
	}
	last := len(b.spans) - 1
	content := last
	if b.spans[last].Separator {
		content--
	}
	if strings.HasSuffix(b.spans[content].Text, ".") {
		s = strings.TrimLeft(s, ".")
	}
	if b.spans[last].Separator {
		if s == "" {
			b.spans = b.spans[:last]
		} else {
			b.spans[last].Text = s
		}
		return
	}
	if s != "" {
		b.spans = append(b.spans, types.StyledSpan{Text: s, Separator: true})
	}
}

// build strips any trailing separator and, when finalPunct is set, ensures
// the output ends with exactly one period.
func (b *spanBuilder) build(finalPunct bool) []types.StyledSpan {
	spans := b.spans
	for len(spans) > 0 && spans[len(spans)-1].Separator {
		spans = spans[:len(spans)-1]
	}
	if finalPunct && len(spans) > 0 {
		last := &spans[len(spans)-1]
		last.Text = strings.TrimRight(last.Text, ".") + "."
	}
	return spans
}

// NumberingStyle selects the per-reference numbering prefix.
type NumberingStyle int

const (
	// NumberDot renders "1. ".
	NumberDot NumberingStyle = iota
	// NumberParen renders "1) ".
	NumberParen
	// NumberBracket renders "[1] ".
	NumberBracket
	// NumberParens renders "(1) ".
	NumberParens
	// NumberPlain renders "1 ".
	NumberPlain
	// NumberNone renders no prefix.
	NumberNone
)

var numberingStyleNames = map[NumberingStyle]string{
	NumberDot:     "dot",
	NumberParen:   "paren",
	NumberBracket: "bracket",
	NumberParens:  "parens",
	NumberPlain:   "plain",
	NumberNone:    "none",
}

func (s NumberingStyle) String() string {
	if n, ok := numberingStyleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("numbering-style(%d)", int(s))
}

// ParseNumberingStyle maps a config string to a NumberingStyle.
func ParseNumberingStyle(s string) (NumberingStyle, error) {
	for st, name := range numberingStyleNames {
		if name == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown numbering style %q", s)
}

// NumberPrefix renders the numbering prefix for the 1-based reference n,
// including its trailing space. NumberNone returns "".
func NumberPrefix(style NumberingStyle, n int) string {
	switch style {
	case NumberDot:
		return fmt.Sprintf("%d. ", n)
	case NumberParen:
		return fmt.Sprintf("%d) ", n)
	case NumberBracket:
		return fmt.Sprintf("[%d] ", n)
	case NumberParens:
		return fmt.Sprintf("(%d) ", n)
	case NumberPlain:
		return fmt.Sprintf("%d ", n)
	}
	return ""
}
