// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package style turns bibliographic metadata into styled citation spans.
//
// A Config is either one of ten fixed presets or a custom element list; the
// two are mutually exclusive and selected by the Variant tag. Formatters are
// pure template functions of Metadata; all user-visible punctuation lives
// here, nowhere else.
package style

import (
	"fmt"
)

// Variant selects a citation style. Custom uses the Config's element list;
// every other variant is a fixed template.
type Variant int

const (
	Vancouver Variant = iota
	AMA
	APA
	ACS
	RSC
	CTA
	IEEE
	Nature
	Harvard
	Chicago
	Custom
)

var variantNames = map[Variant]string{
	Vancouver: "vancouver",
	AMA:       "ama",
	APA:       "apa",
	ACS:       "acs",
	RSC:       "rsc",
	CTA:       "cta",
	IEEE:      "ieee",
	Nature:    "nature",
	Harvard:   "harvard",
	Chicago:   "chicago",
	Custom:    "custom",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant maps a config string to a Variant.
func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown citation style %q", s)
}

// ElementKind identifies a citation element in a custom layout.
type ElementKind int

const (
	KindAuthors ElementKind = iota
	KindTitle
	KindJournal
	KindYear
	KindVolume
	KindIssue
	KindPages
	KindDOI
)

var kindNames = map[ElementKind]string{
	KindAuthors: "authors",
	KindTitle:   "title",
	KindJournal: "journal",
	KindYear:    "year",
	KindVolume:  "volume",
	KindIssue:   "issue",
	KindPages:   "pages",
	KindDOI:     "doi",
}

func (k ElementKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseElementKind maps a config string to an ElementKind.
func ParseElementKind(s string) (ElementKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown citation element %q", s)
}

// ElementFormat controls how one custom element renders.
type ElementFormat struct {
	Italic      bool   `json:"italic" yaml:"italic"`
	Bold        bool   `json:"bold" yaml:"bold"`
	Parentheses bool   `json:"parentheses" yaml:"parentheses"`
	Separator   string `json:"separator" yaml:"separator"`
}

// Element is one entry in a custom layout.
type Element struct {
	Kind   ElementKind
	Format ElementFormat
}

// maxElements bounds a custom layout.
const maxElements = 8

// Config describes a citation style. Elements is consulted only when
// Variant is Custom; the scalar options apply to both custom layouts and
// anywhere a preset delegates to them.
type Config struct {
	Variant  Variant
	Elements []Element

	AuthorFormat    AuthorFormat
	AuthorSeparator string
	EtAlLimit       int
	UseAnd          bool
	UseAmpersand    bool

	DOIFormat    DOIFormat
	DOIHyperlink bool

	PageFormat   PageFormat
	JournalStyle JournalStyle

	NumberingStyle   NumberingStyle
	FinalPunctuation bool
}

// Validate rejects configurations that cannot be formatted: an element list
// on a preset variant, an empty or oversized custom layout, or duplicate
// element kinds. Duplicates are an error at construction, not something to
// silently filter later.
func (c Config) Validate() error {
	if c.Variant != Custom {
		if len(c.Elements) > 0 {
			return fmt.Errorf("style %s is a preset and cannot carry custom elements", c.Variant)
		}
		return nil
	}

	if len(c.Elements) == 0 {
		return fmt.Errorf("custom style requires at least one element")
	}
	if len(c.Elements) > maxElements {
		return fmt.Errorf("custom style has %d elements, maximum is %d", len(c.Elements), maxElements)
	}

	seen := make(map[ElementKind]bool, len(c.Elements))
	for _, e := range c.Elements {
		if seen[e.Kind] {
			return fmt.Errorf("duplicate citation element %s", e.Kind)
		}
		seen[e.Kind] = true
	}
	return nil
}
