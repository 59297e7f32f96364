// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// AuthorFormat selects one of six author name layouts.
type AuthorFormat int

const (
	// InitialsFamily renders "DR Dreyer".
	InitialsFamily AuthorFormat = iota
	// FamilyInitials renders "Dreyer DR".
	FamilyInitials
	// FamilyCommaDotted renders "Dreyer, D.R.".
	FamilyCommaDotted
	// FamilyDotted renders "Dreyer D.R.".
	FamilyDotted
	// DottedFamily renders "D.R. Dreyer".
	DottedFamily
	// FamilyCommaDottedSpaced renders "Dreyer, D. R.".
	FamilyCommaDottedSpaced
)

var authorFormatNames = map[AuthorFormat]string{
	InitialsFamily:          "initials-family",
	FamilyInitials:          "family-initials",
	FamilyCommaDotted:       "family-comma-dotted",
	FamilyDotted:            "family-dotted",
	DottedFamily:            "dotted-family",
	FamilyCommaDottedSpaced: "family-comma-dotted-spaced",
}

func (f AuthorFormat) String() string {
	if s, ok := authorFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("author-format(%d)", int(f))
}

// ParseAuthorFormat maps a config string to an AuthorFormat.
func ParseAuthorFormat(s string) (AuthorFormat, error) {
	for f, name := range authorFormatNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown author format %q", s)
}

// initials returns the capitalized first letters of up to the first two
// space-separated tokens of the given name ("Daniel R." -> "DR").
func initials(given string) string {
	tokens := strings.Fields(given)
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	var b strings.Builder
	for _, tok := range tokens {
		for _, r := range tok {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// dotted interleaves periods into an initials string ("DR" -> "D.R.").
func dotted(ini, sep string) string {
	var parts []string
	for _, r := range ini {
		parts = append(parts, string(r)+".")
	}
	return strings.Join(parts, sep)
}

// FormatAuthor renders a single author in the given format. An author with
// no given name degrades to the family name alone, and vice versa.
func FormatAuthor(a types.Author, f AuthorFormat) string {
	ini := initials(a.Given)
	if a.Family == "" {
		return ini
	}
	if ini == "" {
		return a.Family
	}

	switch f {
	case InitialsFamily:
		return ini + " " + a.Family
	case FamilyInitials:
		return a.Family + " " + ini
	case FamilyCommaDotted:
		return a.Family + ", " + dotted(ini, "")
	case FamilyDotted:
		return a.Family + " " + dotted(ini, "")
	case DottedFamily:
		return dotted(ini, "") + " " + a.Family
	case FamilyCommaDottedSpaced:
		return a.Family + ", " + dotted(ini, " ")
	}
	return a.Family + " " + ini
}

// FormatAuthors renders an author list.
//
// With useAnd or useAmpersand set, every author is shown and the final
// separator becomes "and"/"&". Otherwise etAlLimit (when positive) truncates
// the list and appends "et al". The zero separator defaults to ", ".
func FormatAuthors(authors []types.Author, f AuthorFormat, separator string, etAlLimit int, useAnd, useAmpersand bool) string {
	if len(authors) == 0 {
		return ""
	}
	if separator == "" {
		separator = ", "
	}

	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = FormatAuthor(a, f)
	}

	if useAnd || useAmpersand {
		if len(names) == 1 {
			return names[0]
		}
		joiner := " and "
		if useAmpersand {
			joiner = " & "
		}
		head := strings.Join(names[:len(names)-1], separator)
		return head + joiner + names[len(names)-1]
	}

	if etAlLimit > 0 && len(names) > etAlLimit {
		return strings.Join(names[:etAlLimit], separator) + " et al"
	}
	return strings.Join(names, separator)
}
