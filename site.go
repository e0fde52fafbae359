// Package site is the public façade for the multi-locale marketing site
// runtime: ccTLD-aware request routing, Sanity-backed content resolution, and
// the HTTP surface that ties them together.
package site

import (
	"context"
	"net/http"

	"github.com/dogbodymind/go-site/internal/content"
	sitehttp "github.com/dogbodymind/go-site/internal/http"
	"github.com/dogbodymind/go-site/internal/locale"
	"github.com/dogbodymind/go-site/internal/logging"
	"github.com/dogbodymind/go-site/internal/logging/gologger"
	"github.com/dogbodymind/go-site/internal/router"
	"github.com/dogbodymind/go-site/internal/sanity"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

// Session exports the per-request content resolution session.
type Session = content.Session

// ResolvedPost exports the reference-resolved post aggregate.
type ResolvedPost = content.ResolvedPost

// DisplayPost exports the flattened locale-resolved post view.
type DisplayPost = content.DisplayPost

// DisplaySummary exports the flattened listing view.
type DisplaySummary = content.DisplaySummary

// Decision exports the domain router's verdict for one request line.
type Decision = router.Decision

// Policy exports the domain routing policy.
type Policy = router.Policy

// DocumentClient exports the document store contract consumed by sessions.
type DocumentClient = interfaces.DocumentClient

var (
	// ErrMissingReference exports the missing-document sentinel.
	ErrMissingReference = content.ErrMissingReference
	// ErrQueryFailed exports the upstream-failure sentinel.
	ErrQueryFailed = content.ErrQueryFailed
	// ErrInvalidLanguage exports the unsupported-locale sentinel.
	ErrInvalidLanguage = content.ErrInvalidLanguage
)

// Module is the assembled site runtime.
type Module struct {
	cfg      Config
	policy   router.Policy
	client   interfaces.DocumentClient
	provider interfaces.LoggerProvider
	api      *sitehttp.API
}

// Option overrides a module dependency at construction time.
type Option func(*Module)

// WithDocumentClient substitutes the document store client, bypassing the
// built-in Sanity client. Used for tests and alternative backends.
func WithDocumentClient(client interfaces.DocumentClient) Option {
	return func(m *Module) {
		if client != nil {
			m.client = client
		}
	}
}

// WithLoggerProvider substitutes the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// New validates the configuration and assembles the runtime.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	module := &Module{
		cfg:    cfg,
		policy: router.Policy{AllowCrossDomain: cfg.Router.AllowCrossDomain},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(module)
		}
	}

	if module.provider == nil {
		provider, err := buildProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		module.provider = provider
	}

	if module.client == nil {
		client, err := buildClient(cfg, module.provider)
		if err != nil {
			return nil, err
		}
		module.client = client
	}

	module.api = sitehttp.NewAPI(module.sessionFactory(),
		sitehttp.WithPolicy(module.policy),
		sitehttp.WithLogger(logging.HTTPLogger(module.provider)),
	)
	return module, nil
}

// Handler returns the full HTTP surface: domain routing middleware plus the
// locale-prefixed content routes.
func (m *Module) Handler() http.Handler {
	return m.api.Handler()
}

// Middleware returns just the domain routing middleware, for callers mounting
// their own routes behind it.
func (m *Module) Middleware() func(http.Handler) http.Handler {
	return router.Middleware(m.policy, logging.RouterLogger(m.provider))
}

// Decide evaluates the domain routing rules for one request line without
// serving anything.
func (m *Module) Decide(host, path string) Decision {
	return router.Decide(host, path, m.policy)
}

// NewSession opens an initialized resolution session for one request in the
// given locale. The session must not outlive the request.
func (m *Module) NewSession(ctx context.Context, rawLocale string) (*Session, error) {
	return m.sessionFactory()(ctx, locale.Code(rawLocale))
}

func (m *Module) sessionFactory() sitehttp.SessionFactory {
	logger := logging.ContentLogger(m.provider)
	return func(ctx context.Context, code locale.Code) (*content.Session, error) {
		session, err := content.NewSession(m.client, code.String(), content.WithSessionLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := session.Initialize(ctx); err != nil {
			return nil, err
		}
		return session, nil
	}
}

func buildProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch cfg.Provider {
	case "", "noop":
		return noopProvider{}, nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, ErrLoggingProviderUnknown
	}
}

func buildClient(cfg Config, provider interfaces.LoggerProvider) (interfaces.DocumentClient, error) {
	opts := []sanity.Option{sanity.WithLogger(logging.SanityLogger(provider))}
	if cfg.Cache.Enabled {
		opts = append(opts, sanity.WithQueryCache(sanity.NewQueryCache(cfg.Cache.Capacity, cfg.Cache.DefaultTTL)))
	}
	client, err := sanity.New(sanity.Config{
		ProjectID:  cfg.Sanity.ProjectID,
		Dataset:    cfg.Sanity.Dataset,
		APIVersion: cfg.Sanity.APIVersion,
		Token:      cfg.Sanity.Token,
		UseCDN:     cfg.Sanity.UseCDN,
		BaseURL:    cfg.Sanity.BaseURL,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
