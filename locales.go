package site

import "github.com/dogbodymind/go-site/internal/locale"

// ErrUnknownLocale exports the unsupported-locale sentinel from locale parsing.
var ErrUnknownLocale = locale.ErrUnsupported

// LocaleInfo is the stable public locale view exposed by site.
type LocaleInfo struct {
	Code        string
	Domain      string
	LanguageTag string
	IsDefault   bool
}

// Locales returns every supported locale with its canonical domain, in stable
// order with the default locale first.
func Locales() []LocaleInfo {
	infos := make([]LocaleInfo, 0, len(locale.All()))
	for _, code := range locale.All() {
		infos = append(infos, LocaleInfo{
			Code:        code.String(),
			Domain:      locale.Domain(code),
			LanguageTag: code.LanguageTag(),
			IsDefault:   code == locale.Default,
		})
	}
	return infos
}

// LocaleForHost maps a request host to its locale, falling back to the
// default locale for unknown hosts.
func LocaleForHost(host string) LocaleInfo {
	code := locale.ForHost(host)
	return LocaleInfo{
		Code:        code.String(),
		Domain:      locale.Domain(code),
		LanguageTag: code.LanguageTag(),
		IsDefault:   code == locale.Default,
	}
}
