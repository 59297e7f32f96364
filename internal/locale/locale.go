// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locale provides the user-visible strings embedded in formatted
// output, in each supported language. Only strings that end up inside the
// output artifact live here; CLI help and diagnostics stay English.
package locale

import "fmt"

// Language selects a translation set.
type Language string

const (
	English Language = "en"
	Russian Language = "ru"
)

// Message keys.
const (
	KeyUnresolved  = "unresolved"
	KeyFetchFailed = "fetch_failed"
	KeyDuplicateOf = "duplicate_of"
)

var messages = map[Language]map[string]string{
	English: {
		KeyUnresolved:  "Could not identify the reference — verify the source and add a DOI manually",
		KeyFetchFailed: "Failed to retrieve metadata — check the DOI or try again later",
		KeyDuplicateOf: "duplicate of reference %d",
	},
	Russian: {
		KeyUnresolved:  "Не удалось распознать источник — проверьте ссылку и добавьте DOI вручную",
		KeyFetchFailed: "Не удалось получить метаданные — проверьте DOI или повторите попытку позже",
		KeyDuplicateOf: "дубликат ссылки %d",
	},
}

// Parse returns the Language for a config string, defaulting to English.
func Parse(s string) Language {
	if _, ok := messages[Language(s)]; ok {
		return Language(s)
	}
	return English
}

// Message returns the translation for key, falling back to English for an
// unknown language or key.
func Message(lang Language, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages[English][key]
}

// DuplicateOf returns the duplicate annotation for a reference, where n is
// the one-based number of the canonical occurrence.
func DuplicateOf(lang Language, n int) string {
	return fmt.Sprintf(Message(lang, KeyDuplicateOf), n)
}
