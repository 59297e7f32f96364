// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"fmt"
	"strings"
)

// PageFormat selects one of six page-range layouts.
type PageFormat int

const (
	// PagesFullHyphen renders "228-240".
	PagesFullHyphen PageFormat = iota
	// PagesFullEnDash renders "228–240".
	PagesFullEnDash
	// PagesElidedHyphen renders "228-40".
	PagesElidedHyphen
	// PagesElidedEnDash renders "228–40".
	PagesElidedEnDash
	// PagesFirstOnly renders "228".
	PagesFirstOnly
	// PagesFullPrefixed renders "pp. 228-240".
	PagesFullPrefixed
)

var pageFormatNames = map[PageFormat]string{
	PagesFullHyphen:   "full-hyphen",
	PagesFullEnDash:   "full-endash",
	PagesElidedHyphen: "elided-hyphen",
	PagesElidedEnDash: "elided-endash",
	PagesFirstOnly:    "first-only",
	PagesFullPrefixed: "full-prefixed",
}

func (f PageFormat) String() string {
	if s, ok := pageFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("page-format(%d)", int(f))
}

// ParsePageFormat maps a config string to a PageFormat.
func ParsePageFormat(s string) (PageFormat, error) {
	for f, name := range pageFormatNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown page format %q", s)
}

const enDash = "–"

// splitPageRange splits "228-240" or "228–240" into start and end. A value
// without a recognized range delimiter returns ok=false.
func splitPageRange(pages string) (start, end string, ok bool) {
	for _, delim := range []string{enDash, "-"} {
		if i := strings.Index(pages, delim); i > 0 {
			start = strings.TrimSpace(pages[:i])
			end = strings.TrimSpace(pages[i+len(delim):])
			if start != "" && end != "" {
				return start, end, true
			}
		}
	}
	return "", "", false
}

// elide shortens the end page to its suffix that differs from the start page
// ("228"/"240" -> "40", "122"/"128" -> "8"). Ranges whose pages differ in
// length are returned unshortened.
func elide(start, end string) string {
	if len(start) != len(end) {
		return end
	}
	common := 0
	for common < len(start) && start[common] == end[common] {
		common++
	}
	if common == 0 || common == len(end) {
		return end
	}
	return end[common:]
}

// FormatPages renders a page value in the given format. Single pages and
// article-number style values pass through untouched apart from the
// "pp. " prefix.
func FormatPages(pages string, f PageFormat) string {
	pages = strings.TrimSpace(pages)
	if pages == "" {
		return ""
	}

	start, end, ok := splitPageRange(pages)
	if !ok {
		if f == PagesFullPrefixed {
			return "pp. " + pages
		}
		return pages
	}

	switch f {
	case PagesFullHyphen:
		return start + "-" + end
	case PagesFullEnDash:
		return start + enDash + end
	case PagesElidedHyphen:
		return start + "-" + elide(start, end)
	case PagesElidedEnDash:
		return start + enDash + elide(start, end)
	case PagesFirstOnly:
		return start
	case PagesFullPrefixed:
		return "pp. " + start + "-" + end
	}
	return start + "-" + end
}
