package router

import (
	"net/http"
	"strings"

	"github.com/dogbodymind/go-site/internal/locale"
)

// Action is the terminal outcome of one routing decision.
type Action string

const (
	// ActionRedirect sends the client to Location with Status.
	ActionRedirect Action = "redirect"
	// ActionRewrite serves Path internally; the client-visible URL is unchanged.
	ActionRewrite Action = "rewrite"
	// ActionPassthrough leaves the request untouched.
	ActionPassthrough Action = "passthrough"
)

// Policy is the static routing configuration. AllowCrossDomain permits a
// non-canonical domain to serve another locale's content without redirecting.
type Policy struct {
	AllowCrossDomain bool
}

// Decision describes what the HTTP adapter should do with a request. Exactly
// one of Location (redirects) or Path (rewrites) is populated.
type Decision struct {
	Action   Action
	Location string
	Status   int
	Path     string
}

// Decide maps (hostname, path) to a single routing action. It is pure, never
// errors, and enforces one canonical (domain, locale) pairing per language:
//
//	A: path carries the domain's own default locale -> redirect, prefix stripped
//	B: path carries a different locale, cross-domain disabled -> redirect to
//	   that locale's canonical domain, prefix stripped
//	C: path carries no locale -> internal rewrite injecting the domain default
//	D: path carries a different locale, cross-domain enabled -> rewrite as-is
//
// Cases are evaluated in that order; absence of a match degrades to
// passthrough.
func Decide(host, path string, policy Policy) Decision {
	path = normalizePath(path)
	if Excluded(path) {
		return Decision{Action: ActionPassthrough}
	}

	domainDefault := locale.ForHost(host)
	current, rest, ok := splitLocale(path)

	if ok && current == domainDefault {
		return Decision{
			Action:   ActionRedirect,
			Location: rest,
			Status:   http.StatusMovedPermanently,
		}
	}

	if ok && current != domainDefault && !policy.AllowCrossDomain {
		return Decision{
			Action:   ActionRedirect,
			Location: schemeFor(host) + "://" + locale.Domain(current) + rest,
			Status:   http.StatusMovedPermanently,
		}
	}

	if !ok {
		return Decision{
			Action: ActionRewrite,
			Path:   "/" + domainDefault.String() + strings.TrimSuffix(path, "/"),
		}
	}

	if policy.AllowCrossDomain {
		return Decision{Action: ActionRewrite, Path: path}
	}

	return Decision{Action: ActionPassthrough}
}

// Excluded reports whether the path bypasses locale routing entirely:
// framework internals, API routes, and anything carrying a file extension.
func Excluded(path string) bool {
	path = normalizePath(path)
	if strings.HasPrefix(path, "/_") {
		return true
	}
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return true
	}
	last := path[strings.LastIndex(path, "/")+1:]
	return strings.Contains(last, ".")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// splitLocale extracts a recognized locale from the first path segment,
// returning the locale and the remaining path (always rooted, "/" minimum).
func splitLocale(path string) (locale.Code, string, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, rest, _ := strings.Cut(trimmed, "/")
	code, err := locale.Parse(segment)
	if err != nil {
		return "", path, false
	}
	if rest == "" {
		return code, "/", true
	}
	return code, "/" + rest, true
}

// Recognized local development hosts keep http on cross-domain redirects;
// everything else is assumed to sit behind TLS.
func schemeFor(host string) string {
	normalized := locale.NormalizeHost(host)
	switch normalized {
	case "localhost", "127.0.0.1", "::1", "0.0.0.0":
		return "http"
	}
	if strings.HasSuffix(normalized, ".local") || strings.HasSuffix(normalized, ".localhost") {
		return "http"
	}
	return "https"
}
