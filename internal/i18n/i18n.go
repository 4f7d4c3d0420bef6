// Package i18n resolves user-facing strings by key. Only English ships
// today; lookups go through a per-language table so adding a locale means
// adding a table, not touching the views.
package i18n

import "fmt"

type Language string

const LangEN Language = "en"

var tables = map[Language]map[string]string{
	LangEN: en,
}

var current = LangEN

// SetLanguage selects the active locale. Anything without a table falls
// back to English.
func SetLanguage(lang string) {
	if _, ok := tables[Language(lang)]; ok {
		current = Language(lang)
		return
	}
	current = LangEN
}

func Current() Language {
	return current
}

// T resolves key in the active locale. Unknown keys come back verbatim so
// a missing entry shows up on screen instead of rendering blank.
func T(key string) string {
	if v, ok := tables[current][key]; ok {
		return v
	}
	return key
}

// Tf resolves key and applies fmt-style formatting.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}
