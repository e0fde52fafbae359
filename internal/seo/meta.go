package seo

import (
	"strings"

	"github.com/dogbodymind/go-site/internal/locale"
)

// Alternate is one hreflang link for a page.
type Alternate struct {
	HrefLang string `json:"hreflang"`
	Href     string `json:"href"`
}

// CanonicalURL builds the single authoritative URL for a path in the given
// locale. Canonical URLs never carry a locale path segment; the domain itself
// encodes the language.
func CanonicalURL(target locale.Code, path string) string {
	return "https://" + locale.Domain(target) + normalizePath(path)
}

// Alternates returns the hreflang link set for a path: one entry per
// supported locale plus x-default pointing at the default locale's domain.
func Alternates(path string) []Alternate {
	path = normalizePath(path)

	alternates := make([]Alternate, 0, len(locale.All())+1)
	for _, code := range locale.All() {
		alternates = append(alternates, Alternate{
			HrefLang: code.LanguageTag(),
			Href:     "https://" + locale.Domain(code) + path,
		})
	}
	alternates = append(alternates, Alternate{
		HrefLang: "x-default",
		Href:     "https://" + locale.Domain(locale.Default) + path,
	})
	return alternates
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(path, "/")
}
