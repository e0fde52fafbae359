package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/dogbodymind/go-site/pkg/interfaces"
)

// stubClient routes fetches to a handler and records one call per operation
// tag so tests can assert batching behavior.
type stubClient struct {
	mu      sync.Mutex
	calls   map[string]int
	params  map[string]interfaces.Params
	handler func(query string, params interfaces.Params) (json.RawMessage, error)
}

func newStubClient(handler func(query string, params interfaces.Params) (json.RawMessage, error)) *stubClient {
	return &stubClient{
		calls:   map[string]int{},
		params:  map[string]interfaces.Params{},
		handler: handler,
	}
}

func (c *stubClient) Fetch(_ context.Context, query string, params interfaces.Params, opts interfaces.FetchOptions) (json.RawMessage, error) {
	c.mu.Lock()
	c.calls[opts.Tag]++
	c.params[opts.Tag] = params
	c.mu.Unlock()
	return c.handler(query, params)
}

func (c *stubClient) callCount(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[tag]
}

func (c *stubClient) lastParams(tag string) interfaces.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params[tag]
}

// fixtureStore serves a small dataset shaped like the production one.
type fixtureStore struct {
	organization json.RawMessage
	categories   map[string]json.RawMessage
	authors      map[string]json.RawMessage
	posts        map[string]json.RawMessage
	allCats      []string
}

func newFixtureStore() *fixtureStore {
	return &fixtureStore{
		organization: json.RawMessage(`{"_id":"org-1","name":"Dog Body Mind","logoUrl":"https://cdn.example/logo.png","sameAs":["https://instagram.com/dogbodymind"]}`),
		categories: map[string]json.RawMessage{
			"cat-behavior": json.RawMessage(`{"_id":"cat-behavior","title":[{"_key":"en","value":"Behavior"},{"_key":"de","value":"Verhalten"}],"slug":{"current":"behavior"}}`),
			"cat-health":   json.RawMessage(`{"_id":"cat-health","title":[{"_key":"en","value":"Health"},{"_key":"de","value":"Gesundheit"}],"slug":{"current":"health"},"parent":{"_ref":"cat-behavior","_type":"reference"}}`),
		},
		authors: map[string]json.RawMessage{
			"author-1": json.RawMessage(`{"_id":"author-1","name":"Jane Doe","slug":{"current":"jane-doe"},"bio":[{"_key":"en","value":"Canine researcher"}]}`),
		},
		posts: map[string]json.RawMessage{
			"welpen": json.RawMessage(`{
				"_id":"post-1",
				"slug":{"current":"welpen"},
				"title":[{"_key":"en","value":"Raising Puppies"},{"_key":"de","value":"Welpen aufziehen"}],
				"excerpt":[{"_key":"en","value":"A primer."}],
				"body":[{"_key":"en","value":[{"_type":"block","children":[{"text":"Puppies need patience and play."}]}]}],
				"author":{"_ref":"author-1","_type":"reference"},
				"categories":[{"_ref":"cat-health","_type":"reference"},{"_ref":"cat-behavior","_type":"reference"}],
				"tags":["puppies","training"],
				"publishedAt":"2024-05-02T08:00:00Z",
				"featured":true
			}`),
		},
		allCats: []string{"cat-behavior", "cat-health"},
	}
}

func (f *fixtureStore) handler(t *testing.T) func(query string, params interfaces.Params) (json.RawMessage, error) {
	t.Helper()
	return func(query string, params interfaces.Params) (json.RawMessage, error) {
		switch query {
		case queryOrganization:
			return f.organization, nil
		case queryAllCategories:
			docs := make([]json.RawMessage, 0, len(f.allCats))
			for _, id := range f.allCats {
				docs = append(docs, f.categories[id])
			}
			return marshalDocs(docs)
		case queryCategoriesByID:
			return f.byIDs(params, f.categories)
		case queryCategoryByID:
			id, _ := params["id"].(string)
			doc, ok := f.categories[id]
			if !ok {
				return json.RawMessage("null"), nil
			}
			return doc, nil
		case queryAuthorsByID:
			return f.byIDs(params, f.authors)
		case queryAllAuthors:
			docs := make([]json.RawMessage, 0, len(f.authors))
			for _, doc := range f.authors {
				docs = append(docs, doc)
			}
			return marshalDocs(docs)
		case queryPostBySlug:
			slug, _ := params["slug"].(string)
			doc, ok := f.posts[slug]
			if !ok {
				return json.RawMessage("null"), nil
			}
			return doc, nil
		case queryAllPosts:
			docs := make([]json.RawMessage, 0, len(f.posts))
			for _, doc := range f.posts {
				docs = append(docs, doc)
			}
			return marshalDocs(docs)
		}
		return nil, fmt.Errorf("fixture store: unexpected query %q", query)
	}
}

func (f *fixtureStore) byIDs(params interfaces.Params, docs map[string]json.RawMessage) (json.RawMessage, error) {
	ids, _ := params["ids"].([]string)
	matched := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		if doc, ok := docs[id]; ok {
			matched = append(matched, doc)
		}
	}
	return marshalDocs(matched)
}

func marshalDocs(docs []json.RawMessage) (json.RawMessage, error) {
	return json.Marshal(docs)
}

func newInitializedSession(t *testing.T, client interfaces.DocumentClient, rawLocale string) *Session {
	t.Helper()
	session, err := NewSession(client, rawLocale)
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	if err := session.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	return session
}
