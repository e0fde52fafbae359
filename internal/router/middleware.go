package router

import (
	"net/http"

	"github.com/dogbodymind/go-site/internal/logging"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

// Middleware adapts the pure routing decision onto net/http. Redirects are
// answered directly; rewrites swap the request path before invoking next;
// passthroughs are forwarded untouched.
func Middleware(policy Policy, logger interfaces.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NoOp()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := Decide(r.Host, r.URL.Path, policy)

			switch decision.Action {
			case ActionRedirect:
				location := decision.Location
				if r.URL.RawQuery != "" {
					location += "?" + r.URL.RawQuery
				}
				logger.Debug("locale redirect",
					"host", r.Host,
					"path", r.URL.Path,
					"location", location,
				)
				http.Redirect(w, r, location, decision.Status)
				return
			case ActionRewrite:
				if decision.Path != r.URL.Path {
					logger.Debug("locale rewrite",
						"host", r.Host,
						"path", r.URL.Path,
						"target", decision.Path,
					)
				}
				rewritten := r.Clone(r.Context())
				rewritten.URL.Path = decision.Path
				rewritten.URL.RawPath = ""
				next.ServeHTTP(w, rewritten)
				return
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
