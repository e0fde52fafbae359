package locale

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goodsign/monday"
)

// Code identifies one of the supported content languages.
type Code string

const (
	EN Code = "en"
	DE Code = "de"
	FR Code = "fr"
	ES Code = "es"
	IT Code = "it"
	NL Code = "nl"
)

// Default is the locale used when no better match exists. The fallback chain
// for localized fields ends here before degrading to first-present.
const Default = EN

// ErrUnsupported indicates a locale code outside the supported set.
var ErrUnsupported = errors.New("locale: unsupported locale code")

// All returns the supported locales in stable declaration order.
func All() []Code {
	return []Code{EN, DE, FR, ES, IT, NL}
}

// IsSupported reports whether the raw code names a supported locale.
func IsSupported(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// Parse normalizes a raw locale code into a supported Code.
func Parse(raw string) (Code, error) {
	switch Code(strings.ToLower(strings.TrimSpace(raw))) {
	case EN:
		return EN, nil
	case DE:
		return DE, nil
	case FR:
		return FR, nil
	case ES:
		return ES, nil
	case IT:
		return IT, nil
	case NL:
		return NL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
}

// LanguageTag returns the BCP 47 tag used in page metadata and schema markup.
func (c Code) LanguageTag() string {
	switch c {
	case DE:
		return "de-DE"
	case FR:
		return "fr-FR"
	case ES:
		return "es-ES"
	case IT:
		return "it-IT"
	case NL:
		return "nl-NL"
	default:
		return "en-US"
	}
}

// MondayLocale maps the code onto the goodsign/monday locale used for
// human-readable date formatting.
func (c Code) MondayLocale() monday.Locale {
	switch c {
	case DE:
		return monday.LocaleDeDE
	case FR:
		return monday.LocaleFrFR
	case ES:
		return monday.LocaleEsES
	case IT:
		return monday.LocaleItIT
	case NL:
		return monday.LocaleNlNL
	default:
		return monday.LocaleEnUS
	}
}

func (c Code) String() string {
	return string(c)
}
