package locale

import "testing"

func TestParseNormalizesSupportedCodes(t *testing.T) {
	code, err := Parse("  DE ")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if code != DE {
		t.Fatalf("expected de, got %s", code)
	}
}

func TestParseRejectsUnsupportedCode(t *testing.T) {
	if _, err := Parse("pt"); err == nil {
		t.Fatal("expected error for unsupported locale")
	}
	if IsSupported("pt") {
		t.Fatal("expected pt to be unsupported")
	}
}

func TestEveryLocaleHasExactlyOneDomain(t *testing.T) {
	seen := map[string]Code{}
	for _, code := range All() {
		domain := Domain(code)
		if domain == "" {
			t.Fatalf("locale %s has no canonical domain", code)
		}
		if prior, ok := seen[domain]; ok {
			t.Fatalf("domain %s claimed by both %s and %s", domain, prior, code)
		}
		seen[domain] = code
	}
}

func TestForHostExactMatch(t *testing.T) {
	if got := ForHost("dogbodymind.de"); got != DE {
		t.Fatalf("expected de, got %s", got)
	}
	if got := ForHost("www.dogbodymind.fr"); got != FR {
		t.Fatalf("expected fr ignoring www label, got %s", got)
	}
	if got := ForHost("dogbodymind.com:3000"); got != EN {
		t.Fatalf("expected en ignoring port, got %s", got)
	}
}

func TestForHostSubstringBestEffort(t *testing.T) {
	if got := ForHost("staging.dogbodymind.es"); got != ES {
		t.Fatalf("expected es via substring match, got %s", got)
	}
}

func TestForHostUnknownFallsBackToDefault(t *testing.T) {
	if got := ForHost("localhost:3000"); got != Default {
		t.Fatalf("expected default locale for localhost, got %s", got)
	}
	if got := ForHost(""); got != Default {
		t.Fatalf("expected default locale for empty host, got %s", got)
	}
}

func TestLanguageTags(t *testing.T) {
	if got := EN.LanguageTag(); got != "en-US" {
		t.Fatalf("expected en-US, got %s", got)
	}
	if got := NL.LanguageTag(); got != "nl-NL" {
		t.Fatalf("expected nl-NL, got %s", got)
	}
}
