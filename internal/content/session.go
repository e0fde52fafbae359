package content

import (
	"context"
	"strings"
	"sync"

	goslug "github.com/goliatone/go-slug"

	"github.com/dogbodymind/go-site/internal/locale"
	"github.com/dogbodymind/go-site/internal/logging"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

// Session orchestrates one (request, locale) resolution session. It owns a
// reference cache and a resolver for its own lifetime and must not be shared
// across unrelated requests: construct one per request, discard it afterwards.
//
// Initialize must be called exactly once before any other method. It eagerly
// loads the organization singleton and the full category list; a missing
// organization is a fatal configuration error, not optional content.
type Session struct {
	client   interfaces.DocumentClient
	cache    *ReferenceCache
	resolver *Resolver
	target   locale.Code
	logger   interfaces.Logger

	mu           sync.Mutex
	initializing bool
	initialized  bool
	organization *Organization
	categories   []*Category
}

// SessionOption customizes session construction.
type SessionOption func(*Session)

// WithSessionLogger attaches a structured logger to the session.
func WithSessionLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession validates the requested locale and builds an uninitialized
// session. A locale outside the supported set fails with InvalidLanguageError.
func NewSession(client interfaces.DocumentClient, rawLocale string, opts ...SessionOption) (*Session, error) {
	target, err := locale.Parse(rawLocale)
	if err != nil {
		return nil, &InvalidLanguageError{Raw: rawLocale}
	}

	session := &Session{
		client: client,
		target: target,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(session)
	}

	session.logger = logging.WithFields(session.logger, map[string]any{"locale": target.String()})
	session.cache = NewReferenceCache(session.logger)
	session.resolver = NewResolver(client, session.cache, target, session.logger)
	return session, nil
}

// Locale returns the session's target locale.
func (s *Session) Locale() locale.Code {
	return s.target
}

// Initialize eagerly fetches and caches the organization singleton and the
// full category list. The two fetches run concurrently. Calling Initialize
// twice is an error, as is calling any other method first.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initializing || s.initialized {
		s.mu.Unlock()
		return ErrInitialized
	}
	s.initializing = true
	s.mu.Unlock()

	var (
		wg         sync.WaitGroup
		org        *Organization
		categories []*Category
		orgErr     error
		catErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		org, orgErr = fetchOne[Organization](ctx, s.client, queryOrganization,
			s.params(nil), "initialize_organization")
	}()
	go func() {
		defer wg.Done()
		categories, catErr = fetchMany[Category](ctx, s.client, queryAllCategories,
			s.params(nil), "initialize_categories")
	}()
	wg.Wait()

	if orgErr != nil {
		s.abortInitialize()
		return orgErr
	}
	if catErr != nil {
		s.abortInitialize()
		return catErr
	}
	if org == nil {
		s.abortInitialize()
		return &MissingReferenceError{Type: string(RefOrganization), Locale: s.target}
	}

	s.cache.SetOrganization(org)
	s.cache.SetCategories(categories)

	s.mu.Lock()
	s.organization = org
	s.categories = categories
	s.initializing = false
	s.initialized = true
	s.mu.Unlock()

	s.logger.Debug("session initialized", "categories", len(categories))
	return nil
}

// Post fetches the raw post for (slug, locale), resolves its author and every
// declared category in order, and returns the assembled aggregate. Posts
// without an author reference fail hard; posts without a matching slug fail
// with a MissingReferenceError carrying the slug.
func (s *Session) Post(ctx context.Context, slug string) (*ResolvedPost, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}

	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, &MissingReferenceError{Type: "post", Locale: s.target}
	}

	post, err := fetchOne[Post](ctx, s.client, queryPostBySlug,
		s.params(interfaces.Params{"slug": slug}), "get_post")
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &MissingReferenceError{Type: "post", Slug: slug, Locale: s.target}
	}
	if post.Author == nil || post.Author.IsZero() {
		return nil, &MissingReferenceError{Type: string(RefAuthor), Slug: slug, Locale: s.target}
	}

	requests := make([]ReferenceRequest, 0, len(post.Categories)+1)
	requests = append(requests, ReferenceRequest{ID: post.Author.Ref, Type: RefAuthor})
	for _, ref := range post.Categories {
		if ref.IsZero() {
			continue
		}
		requests = append(requests, ReferenceRequest{ID: ref.Ref, Type: RefCategory})
	}

	resolved, err := s.resolver.Resolve(ctx, requests)
	if err != nil {
		return nil, err
	}

	aggregate := &ResolvedPost{
		Post:          post,
		Author:        resolved[0].Author,
		AllCategories: s.allCategories(),
		Organization:  s.organizationRef(),
	}
	for _, entry := range resolved[1:] {
		aggregate.Categories = append(aggregate.Categories, entry.Category)
	}
	if len(aggregate.Categories) > 0 {
		aggregate.PrimaryCategory = aggregate.Categories[0]
	}
	return aggregate, nil
}

// AllPosts lists every post for the session locale, newest first. Intended
// for static generation and sitemaps.
func (s *Session) AllPosts(ctx context.Context) ([]*Post, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	return fetchMany[Post](ctx, s.client, queryAllPosts, s.params(nil), "get_all_posts")
}

// AllCategories lists every category, refreshing the session cache as a side
// effect.
func (s *Session) AllCategories(ctx context.Context) ([]*Category, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	categories, err := fetchMany[Category](ctx, s.client, queryAllCategories, s.params(nil), "get_all_categories")
	if err != nil {
		return nil, err
	}
	s.cache.SetCategories(categories)
	return categories, nil
}

// AllAuthors lists every author, populating the session cache as a side
// effect.
func (s *Session) AllAuthors(ctx context.Context) ([]*Author, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	authors, err := fetchMany[Author](ctx, s.client, queryAllAuthors, s.params(nil), "get_all_authors")
	if err != nil {
		return nil, err
	}
	s.cache.SetAuthors(authors)
	return authors, nil
}

// CategoryWithParent resolves a category and, when it declares a parent
// reference, the parent too. One level only; ancestor chains are not walked.
func (s *Session) CategoryWithParent(ctx context.Context, id string) (*CategoryWithParent, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}

	id = strings.TrimSpace(id)
	category, ok := s.cache.Category(id)
	if !ok {
		fetched, err := fetchOne[Category](ctx, s.client, queryCategoryByID,
			s.params(interfaces.Params{"id": id}), "get_category")
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			return nil, &MissingReferenceError{Type: string(RefCategory), ID: id, Locale: s.target}
		}
		s.cache.SetCategories([]*Category{fetched})
		category = fetched
	}

	result := &CategoryWithParent{Category: category}
	if category.Parent == nil || category.Parent.IsZero() {
		return result, nil
	}

	resolved, err := s.resolver.Resolve(ctx, []ReferenceRequest{{ID: category.Parent.Ref, Type: RefCategory}})
	if err != nil {
		return nil, err
	}
	result.Parent = resolved[0].Category
	return result, nil
}

// Organization returns the eagerly-loaded organization singleton.
func (s *Session) Organization() (*Organization, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	return s.organizationRef(), nil
}

// Categories returns the category list loaded during Initialize, in store
// order.
func (s *Session) Categories() ([]*Category, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	return s.allCategories(), nil
}

// abortInitialize releases the initialization claim after a failed attempt so
// the caller may retry.
func (s *Session) abortInitialize() {
	s.mu.Lock()
	s.initializing = false
	s.mu.Unlock()
}

func (s *Session) requireInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	return nil
}

func (s *Session) organizationRef() *Organization {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.organization
}

func (s *Session) allCategories() []*Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories
}

func (s *Session) params(extra interfaces.Params) interfaces.Params {
	params := interfaces.Params{"language": s.target.String()}
	for key, value := range extra {
		params[key] = value
	}
	return params
}

// normalizeSlug applies the shared slug rules: trimmed input that already
// satisfies them passes through, anything else is normalized best-effort.
func normalizeSlug(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if goslug.IsValid(raw) {
		return raw
	}
	normalized, err := goslug.Normalize(raw)
	if err != nil {
		return ""
	}
	return normalized
}
