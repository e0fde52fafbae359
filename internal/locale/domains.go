package locale

import (
	"net"
	"strings"
)

// Canonical public domains. Every locale has exactly one; the mapping is total
// and fixed at deploy time.
var domains = map[Code]string{
	EN: "dogbodymind.com",
	DE: "dogbodymind.de",
	FR: "dogbodymind.fr",
	ES: "dogbodymind.es",
	IT: "dogbodymind.it",
	NL: "dogbodymind.nl",
}

// Domain returns the canonical public hostname for the locale.
func Domain(c Code) string {
	if domain, ok := domains[c]; ok {
		return domain
	}
	return domains[Default]
}

// ForHost maps a request hostname to its canonical locale. Unrecognized hosts
// are matched best-effort by substring against the known domains, then fall
// back to the default locale. Ports and a leading www label are ignored.
func ForHost(host string) Code {
	normalized := NormalizeHost(host)
	if normalized == "" {
		return Default
	}

	for _, code := range All() {
		if normalized == domains[code] {
			return code
		}
	}
	for _, code := range All() {
		if strings.Contains(normalized, domains[code]) {
			return code
		}
	}
	return Default
}

// NormalizeHost lowercases the hostname, strips any port, and drops a leading
// www label.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}
	if stripped, _, err := net.SplitHostPort(host); err == nil {
		host = stripped
	}
	return strings.TrimPrefix(host, "www.")
}
