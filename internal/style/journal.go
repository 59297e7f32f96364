// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"fmt"
	"strings"
)

// JournalStyle selects how a journal name renders.
type JournalStyle int

const (
	// JournalFull renders "Chemical Society Reviews".
	JournalFull JournalStyle = iota
	// JournalDotted renders "Chem. Soc. Rev.".
	JournalDotted
	// JournalDotFree renders "Chem Soc Rev".
	JournalDotFree
)

var journalStyleNames = map[JournalStyle]string{
	JournalFull:    "full",
	JournalDotted:  "dotted",
	JournalDotFree: "dot-free",
}

func (s JournalStyle) String() string {
	if n, ok := journalStyleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("journal-style(%d)", int(s))
}

// ParseJournalStyle maps a config string to a JournalStyle.
func ParseJournalStyle(s string) (JournalStyle, error) {
	for st, name := range journalStyleNames {
		if name == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown journal style %q", s)
}

// abbreviations maps lowercased title words to their ISO 4 abbreviation
// (without the dot). Words absent from the table are kept whole.
var abbreviations = map[string]string{
	"academy":        "Acad",
	"advanced":       "Adv",
	"advances":       "Adv",
	"american":       "Am",
	"analytical":     "Anal",
	"angewandte":     "Angew",
	"annual":         "Annu",
	"applied":        "Appl",
	"biological":     "Biol",
	"biology":        "Biol",
	"bulletin":       "Bull",
	"chemical":       "Chem",
	"chemie":         "Chem",
	"chemistry":      "Chem",
	"communications": "Commun",
	"engineering":    "Eng",
	"environmental":  "Environ",
	"european":       "Eur",
	"international":  "Int",
	"journal":        "J",
	"letters":        "Lett",
	"materials":      "Mater",
	"medical":        "Med",
	"medicine":       "Med",
	"national":       "Natl",
	"organic":        "Org",
	"physical":       "Phys",
	"physics":        "Phys",
	"proceedings":    "Proc",
	"research":       "Res",
	"review":         "Rev",
	"reviews":        "Rev",
	"science":        "Sci",
	"sciences":       "Sci",
	"society":        "Soc",
	"technology":     "Technol",
}

// stopWords are dropped entirely from abbreviated titles.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "der": true, "die": true,
	"for": true, "in": true, "of": true, "on": true, "the": true,
}

// Abbreviate renders a journal name in the requested style. Single-word
// titles such as "Nature" are never abbreviated; unknown words are kept
// whole and carry no dot in the dotted style.
func Abbreviate(name string, style JournalStyle) string {
	name = strings.TrimSpace(name)
	if style == JournalFull || name == "" {
		return name
	}

	words := strings.Fields(name)
	if len(words) == 1 {
		return name
	}

	var out []string
	for _, w := range words {
		key := strings.ToLower(strings.Trim(w, ".,"))
		if stopWords[key] {
			continue
		}
		abbr, ok := abbreviations[key]
		if !ok {
			out = append(out, strings.Trim(w, "."))
			continue
		}
		if style == JournalDotted {
			abbr += "."
		}
		out = append(out, abbr)
	}
	if len(out) == 0 {
		return name
	}
	return strings.Join(out, " ")
}
