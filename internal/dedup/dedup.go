// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup detects duplicate references by content hash.
//
// The hash is computed over normalized metadata fields rather than the
// formatted text, so the same work cited in two styles, or with the DOI in
// two textual forms, still collides. Error entries and entries without
// metadata are never compared.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/citation-engine/internal/style"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// titleHashLength bounds how much of the title participates in the hash;
// trailing subtitle differences should not defeat duplicate detection.
const titleHashLength = 50

// DuplicateMap maps a reference index to the index of its first (canonical)
// occurrence. Canonical entries themselves are absent from the map.
type DuplicateMap map[int]int

// ContentHash returns the duplicate-detection hash for metadata.
func ContentHash(md *types.Metadata) string {
	families := make([]string, 0, len(md.Authors))
	for _, a := range md.Authors {
		families = append(families, strings.ToLower(a.Family))
	}
	sort.Strings(families)

	// Truncate on runes so a multibyte title is never split mid-character.
	title := strings.ToLower(md.Title)
	if runes := []rune(title); len(runes) > titleHashLength {
		title = string(runes[:titleHashLength])
	}

	doi := strings.ToLower(style.StripDOIPrefix(md.DOI))

	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%d|%s|%s|%s",
		strings.Join(families, ","),
		title,
		strings.ToLower(md.Journal),
		md.Year,
		md.Volume,
		md.Pages,
		doi,
	)
	return hex.EncodeToString(h.Sum(nil))
}

// Find scans formatted references in index order and returns the duplicate
// map. Only non-error entries carrying metadata participate.
func Find(refs []types.FormattedReference) DuplicateMap {
	dupes := make(DuplicateMap)
	canonical := make(map[string]int)

	for i, ref := range refs {
		if ref.IsError || ref.Metadata == nil {
			continue
		}
		hash := ContentHash(ref.Metadata)
		if first, seen := canonical[hash]; seen {
			dupes[i] = first
			continue
		}
		canonical[hash] = i
	}
	return dupes
}
