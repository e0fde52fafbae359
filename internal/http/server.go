package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dogbodymind/go-site/internal/content"
	"github.com/dogbodymind/go-site/internal/locale"
	"github.com/dogbodymind/go-site/internal/logging"
	"github.com/dogbodymind/go-site/internal/router"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

// SessionFactory builds an initialized content session for one request. The
// returned session is owned by the caller and discarded after the response.
type SessionFactory func(ctx context.Context, code locale.Code) (*content.Session, error)

// API registers the public site endpoints behind the locale rewrite
// middleware. Every content route is locale-prefixed after the rewrite, so
// handlers read the locale from the path, never from the host.
type API struct {
	sessions SessionFactory
	policy   router.Policy
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// WithPolicy overrides the domain routing policy.
func WithPolicy(policy router.Policy) Option {
	return func(api *API) {
		if api != nil {
			api.policy = policy
		}
	}
}

// WithLogger wires a structured logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// NewAPI constructs the HTTP surface around a session factory.
func NewAPI(sessions SessionFactory, opts ...Option) *API {
	api := &API{
		sessions: sessions,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Handler assembles the chi router. The domain router middleware runs before
// route matching, so rewritten paths land on the locale-prefixed routes while
// excluded paths (extensions, /api, /_ internals) pass through untouched.
func (api *API) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(requestID)
	mux.Use(router.Middleware(api.policy, api.logger))

	mux.Get("/api/health", api.handleHealth)
	mux.Get("/sitemap.xml", api.handleSitemap)
	mux.Get("/robots.txt", api.handleRobots)

	mux.Route("/{locale}", func(r chi.Router) {
		r.Get("/", api.handleHome)
		r.Get("/blog", api.handleListPosts)
		r.Get("/blog/{slug}", api.handleGetPost)
		r.Get("/categories", api.handleListCategories)
		r.Get("/categories/{id}", api.handleGetCategory)
		r.Get("/authors", api.handleListAuthors)
	})

	return mux
}

// session parses the locale path segment and opens an initialized session.
// Only rewritten paths carry a valid locale here; anything else is an
// unroutable path (stray single-segment requests, unknown files), not a
// client asking for an unsupported language.
func (api *API) session(r *http.Request) (*content.Session, error) {
	code, err := locale.Parse(chi.URLParam(r, "locale"))
	if err != nil {
		return nil, errUnroutablePath
	}
	return api.sessions(r.Context(), code)
}

// hostLocale picks the locale for extension paths that bypass the rewrite
// middleware, such as sitemap.xml and robots.txt.
func hostLocale(r *http.Request) locale.Code {
	return locale.ForHost(r.Host)
}

func normalizeSlugParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}
