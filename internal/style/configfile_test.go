// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStyleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeStyleFile(t, `
elements:
  - kind: authors
    format:
      separator: ". "
  - kind: year
    format:
      parentheses: true
      separator: " "
  - kind: title
    format:
      separator: ". "
  - kind: journal
    format:
      italic: true
      separator: ", "
  - kind: doi
authorFormat: family-initials
etAlLimit: 6
doiFormat: url
doiHyperlink: true
pageFormat: elided-endash
journalStyle: dot-free
numberingStyle: bracket
finalPunctuation: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Custom, cfg.Variant)
	require.Len(t, cfg.Elements, 5)
	assert.Equal(t, KindAuthors, cfg.Elements[0].Kind)
	assert.Equal(t, ". ", cfg.Elements[0].Format.Separator)
	assert.True(t, cfg.Elements[1].Format.Parentheses)
	assert.True(t, cfg.Elements[3].Format.Italic)

	assert.Equal(t, FamilyInitials, cfg.AuthorFormat)
	assert.Equal(t, 6, cfg.EtAlLimit)
	assert.Equal(t, DOIURL, cfg.DOIFormat)
	assert.True(t, cfg.DOIHyperlink)
	assert.Equal(t, PagesElidedEnDash, cfg.PageFormat)
	assert.Equal(t, JournalDotFree, cfg.JournalStyle)
	assert.Equal(t, NumberBracket, cfg.NumberingStyle)
	assert.True(t, cfg.FinalPunctuation)
}

func TestLoadConfigRejectsDuplicateKinds(t *testing.T) {
	path := writeStyleFile(t, `
elements:
  - kind: title
  - kind: title
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownEnum(t *testing.T) {
	path := writeStyleFile(t, `
elements:
  - kind: title
pageFormat: roman-numerals
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
