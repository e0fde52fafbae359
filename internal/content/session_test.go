package content

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/dogbodymind/go-site/pkg/interfaces"
)

func TestNewSessionRejectsUnsupportedLocale(t *testing.T) {
	client := newStubClient(newFixtureStore().handler(t))

	_, err := NewSession(client, "pt")
	if err == nil {
		t.Fatal("expected invalid-language error")
	}
	if !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("expected ErrInvalidLanguage, got %v", err)
	}
	var invalid *InvalidLanguageError
	if !errors.As(err, &invalid) || invalid.Raw != "pt" {
		t.Fatalf("expected raw locale in error, got %v", err)
	}
}

func TestSessionMethodsRequireInitialize(t *testing.T) {
	client := newStubClient(newFixtureStore().handler(t))
	session, err := NewSession(client, "en")
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	if _, err := session.Post(context.Background(), "welpen"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from Post, got %v", err)
	}
	if _, err := session.AllPosts(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from AllPosts, got %v", err)
	}
	if _, err := session.CategoryWithParent(context.Background(), "cat-health"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from CategoryWithParent, got %v", err)
	}
}

func TestInitializeLoadsOrganizationAndCategories(t *testing.T) {
	fixtures := newFixtureStore()
	client := newStubClient(fixtures.handler(t))
	session := newInitializedSession(t, client, "de")

	org, err := session.Organization()
	if err != nil || org == nil || org.ID != "org-1" {
		t.Fatalf("expected organization loaded, got %+v err=%v", org, err)
	}
	categories, err := session.Categories()
	if err != nil || len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d err=%v", len(categories), err)
	}

	if err := session.Initialize(context.Background()); !errors.Is(err, ErrInitialized) {
		t.Fatalf("expected second Initialize to fail, got %v", err)
	}
}

func TestInitializeConcurrentCallsClaimOnce(t *testing.T) {
	fixtures := newFixtureStore()
	client := newStubClient(fixtures.handler(t))

	session, err := NewSession(client, "en")
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			errs <- session.Initialize(context.Background())
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInitialized):
			rejected++
		default:
			t.Fatalf("unexpected Initialize error: %v", err)
		}
	}
	if succeeded != 1 || rejected != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d rejections", succeeded, rejected)
	}
}

func TestInitializeFailedAttemptCanBeRetried(t *testing.T) {
	fixtures := newFixtureStore()
	fixtures.organization = json.RawMessage("null")
	client := newStubClient(fixtures.handler(t))

	session, err := NewSession(client, "en")
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	if err := session.Initialize(context.Background()); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected missing organization error, got %v", err)
	}

	fixtures.organization = newFixtureStore().organization
	if err := session.Initialize(context.Background()); err != nil {
		t.Fatalf("expected retry after failure to succeed, got %v", err)
	}
}

func TestInitializeFailsWithoutOrganization(t *testing.T) {
	fixtures := newFixtureStore()
	fixtures.organization = json.RawMessage("null")
	client := newStubClient(fixtures.handler(t))

	session, err := NewSession(client, "en")
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	err = session.Initialize(context.Background())
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected missing organization error, got %v", err)
	}
	var missing *MissingReferenceError
	if !errors.As(err, &missing) || missing.Type != string(RefOrganization) {
		t.Fatalf("expected organization named in error, got %v", err)
	}
}

func TestPostResolvesAuthorAndCategoriesInOrder(t *testing.T) {
	fixtures := newFixtureStore()
	client := newStubClient(fixtures.handler(t))
	session := newInitializedSession(t, client, "en")

	resolved, err := session.Post(context.Background(), "welpen")
	if err != nil {
		t.Fatalf("Post error: %v", err)
	}

	if resolved.Author == nil || resolved.Author.ID != "author-1" {
		t.Fatalf("expected resolved author, got %+v", resolved.Author)
	}
	if len(resolved.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(resolved.Categories))
	}
	// declared order is significant: health first, so it is primary
	if resolved.Categories[0].ID != "cat-health" || resolved.Categories[1].ID != "cat-behavior" {
		t.Fatalf("expected declared category order preserved, got %s, %s",
			resolved.Categories[0].ID, resolved.Categories[1].ID)
	}
	if resolved.PrimaryCategory == nil || resolved.PrimaryCategory.ID != "cat-health" {
		t.Fatalf("expected primary category cat-health, got %+v", resolved.PrimaryCategory)
	}
	if resolved.Organization == nil || len(resolved.AllCategories) != 2 {
		t.Fatal("expected aggregate to carry organization and full category list")
	}

	// categories were preloaded during Initialize; only the author needed a fetch
	if got := client.callCount("resolve_categories"); got != 0 {
		t.Fatalf("expected category cache hits, got %d fetches", got)
	}
	if got := client.callCount("resolve_authors"); got != 1 {
		t.Fatalf("expected one author fetch, got %d", got)
	}
}

func TestPostMissingSlugFailsWithContext(t *testing.T) {
	fixtures := newFixtureStore()
	client := newStubClient(fixtures.handler(t))
	session := newInitializedSession(t, client, "en")

	_, err := session.Post(context.Background(), "missing-slug")
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
	var missing *MissingReferenceError
	if !errors.As(err, &missing) || missing.Slug != "missing-slug" {
		t.Fatalf("expected slug in error context, got %v", err)
	}
}

func TestPostWithoutAuthorReferenceFailsHard(t *testing.T) {
	fixtures := newFixtureStore()
	fixtures.posts["orphan"] = json.RawMessage(`{
		"_id":"post-2",
		"slug":{"current":"orphan"},
		"title":[{"_key":"en","value":"Orphan"}],
		"categories":[]
	}`)
	client := newStubClient(fixtures.handler(t))
	session := newInitializedSession(t, client, "en")

	_, err := session.Post(context.Background(), "orphan")
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected missing author failure, got %v", err)
	}
	var missing *MissingReferenceError
	if !errors.As(err, &missing) || missing.Type != string(RefAuthor) {
		t.Fatalf("expected author named in error, got %v", err)
	}
}

func TestPostSurfacesQueryFailures(t *testing.T) {
	fixtures := newFixtureStore()
	base := fixtures.handler(t)
	client := newStubClient(func(query string, params interfaces.Params) (json.RawMessage, error) {
		if query == queryPostBySlug {
			return nil, errors.New("connection reset")
		}
		return base(query, params)
	})
	session := newInitializedSession(t, client, "en")

	_, err := session.Post(context.Background(), "welpen")
	if !errors.Is(err, ErrQueryFailed) {
		t.Fatalf("expected ErrQueryFailed, got %v", err)
	}
}

func TestCategoryWithParentResolvesOneLevel(t *testing.T) {
	fixtures := newFixtureStore()
	client := newStubClient(fixtures.handler(t))
	session := newInitializedSession(t, client, "en")

	result, err := session.CategoryWithParent(context.Background(), "cat-health")
	if err != nil {
		t.Fatalf("CategoryWithParent error: %v", err)
	}
	if result.Category == nil || result.Category.ID != "cat-health" {
		t.Fatalf("expected cat-health, got %+v", result.Category)
	}
	if result.Parent == nil || result.Parent.ID != "cat-behavior" {
		t.Fatalf("expected parent cat-behavior, got %+v", result.Parent)
	}

	root, err := session.CategoryWithParent(context.Background(), "cat-behavior")
	if err != nil {
		t.Fatalf("CategoryWithParent error: %v", err)
	}
	if root.Parent != nil {
		t.Fatalf("expected no parent for root category, got %+v", root.Parent)
	}
}

func TestAllAuthorsPopulatesCache(t *testing.T) {
	fixtures := newFixtureStore()
	client := newStubClient(fixtures.handler(t))
	session := newInitializedSession(t, client, "en")

	authors, err := session.AllAuthors(context.Background())
	if err != nil || len(authors) != 1 {
		t.Fatalf("expected one author, got %d err=%v", len(authors), err)
	}

	// subsequent post resolution finds the author in cache
	if _, err := session.Post(context.Background(), "welpen"); err != nil {
		t.Fatalf("Post error: %v", err)
	}
	if got := client.callCount("resolve_authors"); got != 0 {
		t.Fatalf("expected author cache hit, got %d fetches", got)
	}
}

func TestAllPostsListsForLocale(t *testing.T) {
	fixtures := newFixtureStore()
	client := newStubClient(fixtures.handler(t))
	session := newInitializedSession(t, client, "fr")

	posts, err := session.AllPosts(context.Background())
	if err != nil || len(posts) != 1 {
		t.Fatalf("expected one post, got %d err=%v", len(posts), err)
	}
	params := client.lastParams("get_all_posts")
	if lang, _ := params["language"].(string); lang != "fr" {
		t.Fatalf("expected locale param fr, got %v", params["language"])
	}
}
