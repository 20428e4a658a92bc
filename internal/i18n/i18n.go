// Package i18n resolves the UI language for a request. The URL is the
// source of truth: a path prefix (/en, /ar, /kur) wins, a lang query
// parameter triggers canonicalization, and requests without any language
// indicator fall back to the browser's Accept-Language preference.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

const DefaultLanguage = "en"

var supported = []string{"en", "ar", "kur"}

var matcher = language.NewMatcher([]language.Tag{
	language.English,          // en
	language.Arabic,           // ar
	language.MustParse("ckb"), // Central Kurdish, served under the /kur prefix
})

// IsSupported reports whether code is one of the marketplace languages.
func IsSupported(code string) bool {
	for _, lang := range supported {
		if lang == code {
			return true
		}
	}
	return false
}

// Supported returns the language codes in canonical order.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// FromPath extracts the language prefix from a URL path. The second value
// is the path with the prefix removed (always starting with "/").
func FromPath(path string) (string, string, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, rest, _ := strings.Cut(trimmed, "/")

	if !IsSupported(segment) {
		return "", path, false
	}

	if rest == "" {
		return segment, "/", true
	}
	return segment, "/" + rest, true
}

// Prefix puts a language prefix on a path.
func Prefix(lang, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == "/" {
		return "/" + lang
	}
	return "/" + lang + path
}

// Negotiate maps an Accept-Language header to a supported language,
// falling back to the default when nothing matches.
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}

	_, index, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}

	return supported[index]
}
