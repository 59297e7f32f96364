// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"fmt"
	"strings"
)

// DOIFormat selects the textual DOI form. The hyperlink target is always
// the https://doi.org URL regardless of the textual form.
type DOIFormat int

const (
	// DOIBare renders "10.1039/B917103G".
	DOIBare DOIFormat = iota
	// DOILowerPrefix renders "doi:10.1039/B917103G".
	DOILowerPrefix
	// DOIUpperPrefix renders "DOI:10.1039/B917103G".
	DOIUpperPrefix
	// DOIURL renders "https://doi.org/10.1039/B917103G".
	DOIURL
)

var doiFormatNames = map[DOIFormat]string{
	DOIBare:        "bare",
	DOILowerPrefix: "doi-prefix",
	DOIUpperPrefix: "DOI-prefix",
	DOIURL:         "url",
}

func (f DOIFormat) String() string {
	if s, ok := doiFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("doi-format(%d)", int(f))
}

// ParseDOIFormat maps a config string to a DOIFormat.
func ParseDOIFormat(s string) (DOIFormat, error) {
	for f, name := range doiFormatNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown DOI format %q", s)
}

// FormatDOI renders a DOI in the given textual form.
func FormatDOI(doi string, f DOIFormat) string {
	switch f {
	case DOILowerPrefix:
		return "doi:" + doi
	case DOIUpperPrefix:
		return "DOI:" + doi
	case DOIURL:
		return "https://doi.org/" + doi
	}
	return doi
}

// DOITarget returns the hyperlink target for a DOI.
func DOITarget(doi string) string {
	return "https://doi.org/" + doi
}

// doiPrefixes are stripped by StripDOIPrefix, longest match first.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
	"DOI:",
}

// StripDOIPrefix undoes FormatDOI: it removes any URL or doi:/DOI: prefix
// and returns the bare DOI with its original case intact.
func StripDOIPrefix(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(s, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}
