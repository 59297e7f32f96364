// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-engine/internal/locale"
)

func TestCustomFormatterOrderAndSeparators(t *testing.T) {
	cfg := Config{
		Variant: Custom,
		Elements: []Element{
			{Kind: KindAuthors, Format: ElementFormat{Separator: ". "}},
			{Kind: KindYear, Format: ElementFormat{Parentheses: true, Separator: " "}},
			{Kind: KindTitle, Format: ElementFormat{Separator: ". "}},
			{Kind: KindJournal, Format: ElementFormat{Italic: true, Separator: ", "}},
			{Kind: KindPages, Format: ElementFormat{Separator: ". "}},
		},
		AuthorFormat: FamilyInitials,
		EtAlLimit:    6,
		PageFormat:   PagesElidedEnDash,
		JournalStyle: JournalDotFree,
	}
	f := mustFormatter(t, cfg)
	got := f.Format(grapheneMetadata(), false)

	want := "Dreyer DR, Park S, Bielawski CW, Ruoff RS. (2010) The chemistry of graphene oxide. Chem Soc Rev, 228–40"
	assert.Equal(t, want, plainText(got.Spans))

	// The journal span carries the italic flag.
	idx := -1
	for i, s := range got.Spans {
		if s.Text == "Chem Soc Rev" {
			idx = i
			break
		}
	}
	require.NotEqual(t, -1, idx)
	assert.True(t, got.Spans[idx].Italic)
}

func TestCustomFormatterSkipsEmptyElements(t *testing.T) {
	cfg := Config{
		Variant: Custom,
		Elements: []Element{
			{Kind: KindTitle, Format: ElementFormat{Separator: ". "}},
			{Kind: KindVolume, Format: ElementFormat{Separator: "; "}},
			{Kind: KindYear, Format: ElementFormat{Separator: ". "}},
		},
	}
	f := mustFormatter(t, cfg)

	md := grapheneMetadata()
	md.Volume = ""
	got := f.Format(md, false)

	// The empty volume contributes neither its value nor an extra separator.
	assert.Equal(t, "The chemistry of graphene oxide. 2010", plainText(got.Spans))
}

func TestCustomFormatterTrailingDotValue(t *testing.T) {
	cfg := Config{
		Variant: Custom,
		Elements: []Element{
			{Kind: KindTitle, Format: ElementFormat{Separator: ". "}},
			{Kind: KindYear},
		},
	}
	f := mustFormatter(t, cfg)

	// Crossref titles sometimes end in a period; the separator must not
	// stack a second one.
	md := grapheneMetadata()
	md.Title = "The chemistry of graphene oxide."
	got := f.Format(md, false)

	assert.Equal(t, "The chemistry of graphene oxide. 2010", plainText(got.Spans))
	assert.NotContains(t, plainText(got.Spans), "..")
}

func TestCustomFormatterFinalPunctuation(t *testing.T) {
	cfg := Config{
		Variant: Custom,
		Elements: []Element{
			{Kind: KindTitle, Format: ElementFormat{Separator: ". "}},
		},
		FinalPunctuation: true,
	}
	f := mustFormatter(t, cfg)

	md := grapheneMetadata()
	md.Title = "A title already ending in a period."
	got := f.Format(md, false)

	// No double period: the existing one is collapsed with the final one.
	assert.Equal(t, "A title already ending in a period.", plainText(got.Spans))

	md.Title = "A bare title"
	got = f.Format(md, false)
	assert.Equal(t, "A bare title.", plainText(got.Spans))
}

func TestCustomFormatterDOIHyperlink(t *testing.T) {
	cfg := Config{
		Variant: Custom,
		Elements: []Element{
			{Kind: KindDOI},
		},
		DOIFormat:    DOIURL,
		DOIHyperlink: true,
	}
	f := mustFormatter(t, cfg)
	got := f.Format(grapheneMetadata(), false)

	require.Len(t, got.Spans, 1)
	assert.True(t, got.Spans[0].IsHyperlink)
	assert.Equal(t, "https://doi.org/10.1039/B917103G", got.Spans[0].Text)
	assert.Equal(t, "https://doi.org/10.1039/B917103G", got.Spans[0].HyperlinkTarget)

	preview := f.Format(grapheneMetadata(), true)
	assert.False(t, preview.Spans[0].IsHyperlink)
}

func TestCustomFormatterBoldFlag(t *testing.T) {
	cfg := Config{
		Variant: Custom,
		Elements: []Element{
			{Kind: KindYear, Format: ElementFormat{Bold: true}},
		},
	}
	f := mustFormatter(t, cfg)
	got := f.Format(grapheneMetadata(), false)
	require.Len(t, got.Spans, 1)
	assert.True(t, got.Spans[0].Bold)
	assert.Equal(t, "2010", got.Spans[0].Text)
}

func TestCustomFormatterNilMetadata(t *testing.T) {
	cfg := Config{Variant: Custom, Elements: []Element{{Kind: KindTitle}}}
	f, err := New(cfg, locale.Russian)
	require.NoError(t, err)

	got := f.Format(nil, false)
	assert.True(t, got.IsError)
	assert.Equal(t, locale.Message(locale.Russian, locale.KeyFetchFailed), plainText(got.Spans))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"preset ok", Config{Variant: APA}, false},
		{"custom ok", Config{Variant: Custom, Elements: []Element{{Kind: KindTitle}, {Kind: KindYear}}}, false},
		{"custom empty", Config{Variant: Custom}, true},
		{"duplicate kind", Config{Variant: Custom, Elements: []Element{{Kind: KindTitle}, {Kind: KindTitle}}}, true},
		{"too many elements", Config{Variant: Custom, Elements: []Element{
			{Kind: KindAuthors}, {Kind: KindTitle}, {Kind: KindJournal}, {Kind: KindYear},
			{Kind: KindVolume}, {Kind: KindIssue}, {Kind: KindPages}, {Kind: KindDOI},
			{Kind: KindAuthors},
		}}, true},
		{"preset with elements", Config{Variant: IEEE, Elements: []Element{{Kind: KindDOI}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("cta")
	require.NoError(t, err)
	assert.Equal(t, CTA, v)

	_, err = ParseVariant("mla")
	assert.Error(t, err)
}
