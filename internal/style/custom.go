// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"github.com/pdiddy/citation-engine/internal/locale"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// customFormatter renders the configured element list in order. An empty
// element contributes neither text nor its separator.
type customFormatter struct {
	cfg  Config
	lang locale.Language
}

func (f *customFormatter) Format(md *types.Metadata, forPreview bool) types.FormattedReference {
	if md == nil {
		return errorEntry(f.lang)
	}

	var b spanBuilder
	for _, e := range f.cfg.Elements {
		f.emit(&b, e, md)
	}
	spans := b.build(f.cfg.FinalPunctuation)
	if forPreview {
		spans = forPreviewSpans(spans)
	}
	return types.FormattedReference{Spans: spans, Metadata: md}
}

func (f *customFormatter) emit(b *spanBuilder, e Element, md *types.Metadata) {
	value := f.elementValue(e.Kind, md)
	if value == "" {
		return
	}
	if e.Format.Parentheses {
		value = "(" + value + ")"
	}

	if e.Kind == KindDOI && f.cfg.DOIHyperlink {
		b.link(value, DOITarget(md.DOI))
	} else {
		b.styled(value, e.Format.Italic, e.Format.Bold)
	}
	b.sep(e.Format.Separator)
}

func (f *customFormatter) elementValue(kind ElementKind, md *types.Metadata) string {
	switch kind {
	case KindAuthors:
		return FormatAuthors(md.Authors, f.cfg.AuthorFormat, f.cfg.AuthorSeparator,
			f.cfg.EtAlLimit, f.cfg.UseAnd, f.cfg.UseAmpersand)
	case KindTitle:
		return md.Title
	case KindJournal:
		return Abbreviate(md.Journal, f.cfg.JournalStyle)
	case KindYear:
		if md.Year <= 0 {
			return ""
		}
		return yearString(md)
	case KindVolume:
		return md.Volume
	case KindIssue:
		return md.Issue
	case KindPages:
		return FormatPages(pagesOrArticle(md), f.cfg.PageFormat)
	case KindDOI:
		if md.DOI == "" {
			return ""
		}
		return FormatDOI(md.DOI, f.cfg.DOIFormat)
	}
	return ""
}
