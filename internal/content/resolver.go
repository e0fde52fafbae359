package content

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dogbodymind/go-site/internal/locale"
	"github.com/dogbodymind/go-site/internal/logging"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

// ReferenceRequest names one document to resolve. Organization requests
// ignore the id; the document is a singleton.
type ReferenceRequest struct {
	ID   string
	Type ReferenceType
}

// ResolvedReference is the result for one request; exactly one of the typed
// fields is populated, matching the request type.
type ResolvedReference struct {
	Request      ReferenceRequest
	Author       *Author
	Category     *Category
	Organization *Organization
}

// Resolver resolves batches of heterogeneous references through the session
// cache, batch-fetching only the ids the cache is missing (one fetch per type,
// never one per id). Partial failures become explicit errors: the resolver
// never returns a list with holes.
type Resolver struct {
	client interfaces.DocumentClient
	cache  *ReferenceCache
	target locale.Code
	logger interfaces.Logger
}

// NewResolver wires a resolver to a session's cache and document client.
func NewResolver(client interfaces.DocumentClient, cache *ReferenceCache, target locale.Code, logger interfaces.Logger) *Resolver {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Resolver{client: client, cache: cache, target: target, logger: logger}
}

// Resolve satisfies every request from cache, fetching missing documents
// first. When the store does not return a requested id the whole call fails
// with a MissingReferenceError naming that id and type.
func (r *Resolver) Resolve(ctx context.Context, requests []ReferenceRequest) ([]ResolvedReference, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	var (
		authorIDs   []string
		categoryIDs []string
		wantOrg     bool
	)
	for _, req := range requests {
		switch req.Type {
		case RefAuthor:
			authorIDs = append(authorIDs, req.ID)
		case RefCategory:
			categoryIDs = append(categoryIDs, req.ID)
		case RefOrganization:
			wantOrg = true
		}
	}

	missingAuthors := r.cache.MissingIDs(RefAuthor, authorIDs)
	missingCategories := r.cache.MissingIDs(RefCategory, categoryIDs)
	_, orgCached := r.cache.Organization()

	var wg sync.WaitGroup
	errs := make([]error, 3)

	if len(missingAuthors) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			authors, err := fetchMany[Author](ctx, r.client, queryAuthorsByID,
				interfaces.Params{"language": r.target.String(), "ids": missingAuthors},
				"resolve_authors")
			if err != nil {
				errs[0] = err
				return
			}
			r.cache.SetAuthors(authors)
		}()
	}

	if len(missingCategories) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			categories, err := fetchMany[Category](ctx, r.client, queryCategoriesByID,
				interfaces.Params{"language": r.target.String(), "ids": missingCategories},
				"resolve_categories")
			if err != nil {
				errs[1] = err
				return
			}
			r.cache.SetCategories(categories)
		}()
	}

	if wantOrg && !orgCached {
		wg.Add(1)
		go func() {
			defer wg.Done()
			org, err := fetchOne[Organization](ctx, r.client, queryOrganization,
				interfaces.Params{"language": r.target.String()},
				"resolve_organization")
			if err != nil {
				errs[2] = err
				return
			}
			r.cache.SetOrganization(org)
		}()
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	resolved := make([]ResolvedReference, 0, len(requests))
	for _, req := range requests {
		entry := ResolvedReference{Request: req}
		switch req.Type {
		case RefAuthor:
			author, ok := r.cache.Author(req.ID)
			if !ok {
				return nil, &MissingReferenceError{Type: string(RefAuthor), ID: req.ID, Locale: r.target}
			}
			entry.Author = author
		case RefCategory:
			category, ok := r.cache.Category(req.ID)
			if !ok {
				return nil, &MissingReferenceError{Type: string(RefCategory), ID: req.ID, Locale: r.target}
			}
			entry.Category = category
		case RefOrganization:
			org, ok := r.cache.Organization()
			if !ok {
				return nil, &MissingReferenceError{Type: string(RefOrganization), Locale: r.target}
			}
			entry.Organization = org
		default:
			return nil, &MissingReferenceError{Type: string(req.Type), ID: req.ID, Locale: r.target}
		}
		resolved = append(resolved, entry)
	}
	return resolved, nil
}

// fetchMany runs a query expected to return a document array. A null result
// decodes to an empty slice.
func fetchMany[T any](ctx context.Context, client interfaces.DocumentClient, query string, params interfaces.Params, op string) ([]*T, error) {
	raw, err := client.Fetch(ctx, query, params, interfaces.FetchOptions{Cache: true, Tag: op})
	if err != nil {
		return nil, &QueryFailedError{Operation: op, Err: err}
	}
	if isNull(raw) {
		return nil, nil
	}
	var docs []*T
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, &QueryFailedError{Operation: op, Err: err}
	}
	return docs, nil
}

// fetchOne runs a query expected to return a single document or null.
func fetchOne[T any](ctx context.Context, client interfaces.DocumentClient, query string, params interfaces.Params, op string) (*T, error) {
	raw, err := client.Fetch(ctx, query, params, interfaces.FetchOptions{Cache: true, Tag: op})
	if err != nil {
		return nil, &QueryFailedError{Operation: op, Err: err}
	}
	if isNull(raw) {
		return nil, nil
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &QueryFailedError{Operation: op, Err: err}
	}
	return &doc, nil
}

func isNull(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b == 'n'
	}
	return true
}
