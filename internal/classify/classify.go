// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify detects input lines that are not citations.
// Section headers pass through the pipeline unchanged: they are never
// resolved, formatted, or hashed for duplicate detection.
package classify

import (
	"regexp"
	"strings"
)

// headerLiterals are matched case-insensitively against the whole trimmed
// line, with an optional trailing colon.
var headerLiterals = []string{
	"references",
	"bibliography",
	"reference list",
	"works cited",
	"literature cited",
	"notes and references",
	"notes",
}

// headerPatterns cover numbered structural headers ("Chapter 3", "Part 2").
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?i)chapter\s+\d+$`),
	regexp.MustCompile(`^(?i)part\s+\d+$`),
}

// IsSectionHeader reports whether text is a section header rather than a
// citation. The match is a full-string comparison, not a substring search:
// a citation that merely mentions "references" is not a header.
func IsSectionHeader(text string) bool {
	trimmed := strings.TrimSuffix(strings.TrimSpace(text), ":")
	lower := strings.ToLower(trimmed)

	for _, lit := range headerLiterals {
		if lower == lit {
			return true
		}
	}
	for _, re := range headerPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}
