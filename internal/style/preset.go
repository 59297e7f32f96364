// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"strconv"
	"strings"

	"github.com/pdiddy/citation-engine/internal/locale"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// presetTemplate assembles spans for one fixed style. Each template owns
// its field order and punctuation outright; conformance tests pin the exact
// output, so any change here is a deliberate style revision.
type presetTemplate func(md *types.Metadata, b *spanBuilder)

type presetFormatter struct {
	tmpl       presetTemplate
	finalPunct bool
	lang       locale.Language
}

func (f *presetFormatter) Format(md *types.Metadata, forPreview bool) types.FormattedReference {
	if md == nil {
		return errorEntry(f.lang)
	}
	var b spanBuilder
	f.tmpl(md, &b)
	spans := b.build(f.finalPunct)
	if forPreview {
		spans = forPreviewSpans(spans)
	}
	return types.FormattedReference{Spans: spans, Metadata: md}
}

var presetTemplates = map[Variant]presetTemplate{
	Vancouver: vancouverTemplate,
	AMA:       amaTemplate,
	APA:       apaTemplate,
	ACS:       acsTemplate,
	RSC:       rscTemplate,
	CTA:       ctaTemplate,
	IEEE:      ieeeTemplate,
	Nature:    natureTemplate,
	Harvard:   harvardTemplate,
	Chicago:   chicagoTemplate,
}

// presetFinalPunct lists the presets that always close with a period; the
// others end on their last element (typically a bare DOI).
var presetFinalPunct = map[Variant]bool{
	RSC:     true,
	Chicago: true,
}

func yearString(md *types.Metadata) string {
	if md.Year <= 0 {
		return ""
	}
	return strconv.Itoa(md.Year)
}

// pagesOrArticle prefers the page range, falling back to the article number
// used by electronic-only journals.
func pagesOrArticle(md *types.Metadata) string {
	if md.Pages != "" {
		return md.Pages
	}
	return md.ArticleNumber
}

// numericBlock renders the "2010;39(1):228-40" tail shared by the
// Vancouver-family styles, degrading field by field.
func numericBlock(md *types.Metadata, pf PageFormat) string {
	s := yearString(md)
	if md.Volume != "" {
		if s != "" {
			s += ";"
		}
		s += md.Volume
		if md.Issue != "" {
			s += "(" + md.Issue + ")"
		}
	}
	if p := FormatPages(pagesOrArticle(md), pf); p != "" {
		if s != "" {
			s += ":"
		}
		s += p
	}
	return s
}

// ctaTemplate:
// Dreyer DR, Park S, Bielawski CW, Ruoff RS. The chemistry of graphene
// oxide. Chem Soc Rev 2010;39(1):228–40. doi:10.1039/B917103G
func ctaTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, FamilyInitials, ", ", 6, false, false))
	b.sep(". ")
	b.text(md.Title)
	b.sep(". ")
	b.text(Abbreviate(md.Journal, JournalDotFree))
	b.sep(" ")
	b.text(numericBlock(md, PagesElidedEnDash))
	b.sep(". ")
	if md.DOI != "" {
		b.link(FormatDOI(md.DOI, DOILowerPrefix), DOITarget(md.DOI))
	}
}

// vancouverTemplate:
// Dreyer DR, Park S, Bielawski CW, Ruoff RS. The chemistry of graphene
// oxide. Chem Soc Rev. 2010;39(1):228-40. doi:10.1039/B917103G
func vancouverTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, FamilyInitials, ", ", 6, false, false))
	b.sep(". ")
	b.text(md.Title)
	b.sep(". ")
	b.text(Abbreviate(md.Journal, JournalDotFree))
	b.sep(". ")
	b.text(numericBlock(md, PagesElidedHyphen))
	b.sep(". ")
	if md.DOI != "" {
		b.link(FormatDOI(md.DOI, DOILowerPrefix), DOITarget(md.DOI))
	}
}

// amaTemplate:
// Dreyer DR, Park S, Bielawski CW, Ruoff RS. The chemistry of graphene
// oxide. [Chem. Soc. Rev.] 2010;39(1):228-240. doi:10.1039/B917103G
// (journal italic)
func amaTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, FamilyInitials, ", ", 6, false, false))
	b.sep(". ")
	b.text(md.Title)
	b.sep(". ")
	b.styled(Abbreviate(md.Journal, JournalDotted), true, false)
	b.sep(" ")
	b.text(numericBlock(md, PagesFullHyphen))
	b.sep(". ")
	if md.DOI != "" {
		b.link(FormatDOI(md.DOI, DOILowerPrefix), DOITarget(md.DOI))
	}
}

// apaTemplate:
// Dreyer, D.R., Park, S., Bielawski, C.W., & Ruoff, R.S. (2010). The
// chemistry of graphene oxide. [Chemical Society Reviews], [39](1),
// 228–240. https://doi.org/10.1039/B917103G (journal and volume italic)
func apaTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, FamilyCommaDotted, ", ", 0, false, true))
	if y := yearString(md); y != "" {
		b.sep(" ")
		b.text("(" + y + ").")
	}
	b.sep(" ")
	b.text(md.Title)
	b.sep(". ")
	b.styled(md.Journal, true, false)
	b.sep(", ")
	if md.Volume != "" {
		b.styled(md.Volume, true, false)
		if md.Issue != "" {
			b.text("(" + md.Issue + ")")
		}
		b.sep(", ")
	}
	b.text(FormatPages(pagesOrArticle(md), PagesFullEnDash))
	b.sep(". ")
	if md.DOI != "" {
		b.link(FormatDOI(md.DOI, DOIURL), DOITarget(md.DOI))
	}
}

// acsTemplate:
// Dreyer, D. R.; Park, S.; Bielawski, C. W.; Ruoff, R. S. The chemistry of
// graphene oxide. [Chem. Soc. Rev.] [2010], [39] (1), 228–240.
// DOI:10.1039/B917103G (journal italic, year bold, volume italic)
func acsTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, FamilyCommaDottedSpaced, "; ", 0, false, false))
	b.sep(". ")
	b.text(md.Title)
	b.sep(". ")
	b.styled(Abbreviate(md.Journal, JournalDotted), true, false)
	b.sep(" ")
	b.styled(yearString(md), false, true)
	b.sep(", ")
	if md.Volume != "" {
		b.styled(md.Volume, true, false)
		if md.Issue != "" {
			b.text(" (" + md.Issue + ")")
		}
		b.sep(", ")
	}
	b.text(FormatPages(pagesOrArticle(md), PagesFullEnDash))
	b.sep(". ")
	if md.DOI != "" {
		b.link(FormatDOI(md.DOI, DOIUpperPrefix), DOITarget(md.DOI))
	}
}

// rscTemplate:
// D.R. Dreyer, S. Park, C.W. Bielawski and R.S. Ruoff, [Chem. Soc. Rev.],
// 2010, [39], 228–240. (no title; journal italic, volume bold)
func rscTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, DottedFamily, ", ", 0, true, false))
	b.sep(", ")
	b.styled(Abbreviate(md.Journal, JournalDotted), true, false)
	b.sep(", ")
	b.text(yearString(md))
	b.sep(", ")
	b.styled(md.Volume, false, true)
	b.sep(", ")
	b.text(FormatPages(pagesOrArticle(md), PagesFullEnDash))
}

// ieeeTemplate:
// D.R. Dreyer, S. Park, C.W. Bielawski and R.S. Ruoff, "The chemistry of
// graphene oxide," [Chem. Soc. Rev.], vol. 39, no. 1, pp. 228–240, 2010,
// doi:10.1039/B917103G (journal italic)
func ieeeTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, DottedFamily, ", ", 0, true, false))
	b.sep(", ")
	if md.Title != "" {
		b.text("“" + md.Title + ",”")
		b.sep(" ")
	}
	b.styled(Abbreviate(md.Journal, JournalDotted), true, false)
	b.sep(", ")
	if md.Volume != "" {
		b.text("vol. " + md.Volume)
		b.sep(", ")
	}
	if md.Issue != "" {
		b.text("no. " + md.Issue)
		b.sep(", ")
	}
	if p := FormatPages(pagesOrArticle(md), PagesFullEnDash); p != "" {
		b.text("pp. " + p)
		b.sep(", ")
	}
	b.text(yearString(md))
	b.sep(", ")
	if md.DOI != "" {
		b.link(FormatDOI(md.DOI, DOILowerPrefix), DOITarget(md.DOI))
	}
}

// natureTemplate:
// Dreyer, D. R., Park, S., Bielawski, C. W. & Ruoff, R. S. The chemistry
// of graphene oxide. [Chem. Soc. Rev.] [39], 228–240 (2010).
// (journal italic, volume bold)
func natureTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, FamilyCommaDottedSpaced, ", ", 0, false, true))
	b.sep(" ")
	b.text(md.Title)
	b.sep(". ")
	b.styled(Abbreviate(md.Journal, JournalDotted), true, false)
	b.sep(" ")
	b.styled(md.Volume, false, true)
	b.sep(", ")
	b.text(FormatPages(pagesOrArticle(md), PagesFullEnDash))
	b.sep(" ")
	if y := yearString(md); y != "" {
		b.text("(" + y + ").")
	}
}

// harvardTemplate:
// Dreyer, D.R., Park, S., Bielawski, C.W. and Ruoff, R.S. (2010) 'The
// chemistry of graphene oxide', [Chemical Society Reviews], 39(1),
// pp. 228–240. doi:10.1039/B917103G (journal italic)
func harvardTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, FamilyCommaDotted, ", ", 0, true, false))
	if y := yearString(md); y != "" {
		b.sep(" ")
		b.text("(" + y + ")")
	}
	b.sep(" ")
	if md.Title != "" {
		b.text("‘" + md.Title + "’,")
		b.sep(" ")
	}
	b.styled(md.Journal, true, false)
	b.sep(", ")
	if md.Volume != "" {
		v := md.Volume
		if md.Issue != "" {
			v += "(" + md.Issue + ")"
		}
		b.text(v)
		b.sep(", ")
	}
	b.text(FormatPages(pagesOrArticle(md), PagesFullPrefixed))
	b.sep(". ")
	if md.DOI != "" {
		b.link(FormatDOI(md.DOI, DOILowerPrefix), DOITarget(md.DOI))
	}
}

// chicagoTemplate:
// Dreyer, D. R., Park, S., Bielawski, C. W. and Ruoff, R. S. "The
// chemistry of graphene oxide." [Chemical Society Reviews] 39, no. 1
// (2010): 228–240. (journal italic)
func chicagoTemplate(md *types.Metadata, b *spanBuilder) {
	b.text(FormatAuthors(md.Authors, FamilyCommaDottedSpaced, ", ", 0, true, false))
	b.sep(" ")
	if md.Title != "" {
		b.text("“" + strings.TrimRight(md.Title, ".") + ".”")
		b.sep(" ")
	}
	b.styled(md.Journal, true, false)
	b.sep(" ")
	if md.Volume != "" {
		v := md.Volume
		if md.Issue != "" {
			v += ", no. " + md.Issue
		}
		b.text(v)
		b.sep(" ")
	}
	if y := yearString(md); y != "" {
		b.text("(" + y + ")")
	}
	b.sep(": ")
	b.text(FormatPages(pagesOrArticle(md), PagesFullEnDash))
}
