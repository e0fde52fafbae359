package content

import "testing"

func TestReferenceCacheRoundTrip(t *testing.T) {
	cache := NewReferenceCache(nil)

	if _, ok := cache.Author("author-1"); ok {
		t.Fatal("expected empty cache miss")
	}

	cache.SetAuthors([]*Author{{ID: "author-1", Name: "Jane Doe"}})
	author, ok := cache.Author("author-1")
	if !ok || author.Name != "Jane Doe" {
		t.Fatalf("expected cached author, got %+v ok=%v", author, ok)
	}
}

func TestReferenceCacheSkipsDocumentsWithoutID(t *testing.T) {
	cache := NewReferenceCache(nil)

	cache.SetCategories([]*Category{
		nil,
		{ID: "  "},
		{ID: "cat-1"},
	})

	if _, ok := cache.Category(""); ok {
		t.Fatal("document without id must not be cached")
	}
	if _, ok := cache.Category("cat-1"); !ok {
		t.Fatal("expected cat-1 cached")
	}
}

func TestReferenceCacheMissingIDs(t *testing.T) {
	cache := NewReferenceCache(nil)
	cache.SetCategories([]*Category{{ID: "cat-1"}})

	missing := cache.MissingIDs(RefCategory, []string{"cat-1", "cat-2", "cat-2", "", "cat-3"})
	if len(missing) != 2 || missing[0] != "cat-2" || missing[1] != "cat-3" {
		t.Fatalf("expected [cat-2 cat-3], got %v", missing)
	}
}

func TestReferenceCacheOrganizationSingletonSlot(t *testing.T) {
	cache := NewReferenceCache(nil)

	if _, ok := cache.Organization(); ok {
		t.Fatal("expected empty organization slot")
	}
	if missing := cache.MissingIDs(RefOrganization, []string{"org-1"}); len(missing) != 1 {
		t.Fatalf("expected organization reported missing, got %v", missing)
	}

	cache.SetOrganization(&Organization{ID: "org-1", Name: "Dog Body Mind"})
	org, ok := cache.Organization()
	if !ok || org.Name != "Dog Body Mind" {
		t.Fatalf("expected cached organization, got %+v ok=%v", org, ok)
	}
	if missing := cache.MissingIDs(RefOrganization, []string{"org-1"}); len(missing) != 0 {
		t.Fatalf("expected no missing organization, got %v", missing)
	}

	// nil never clears the slot
	cache.SetOrganization(nil)
	if _, ok := cache.Organization(); !ok {
		t.Fatal("expected organization slot preserved")
	}
}

func TestReferenceCacheLastWriteWins(t *testing.T) {
	cache := NewReferenceCache(nil)
	cache.SetAuthors([]*Author{{ID: "author-1", Name: "First"}})
	cache.SetAuthors([]*Author{{ID: "author-1", Name: "Second"}})

	author, _ := cache.Author("author-1")
	if author.Name != "Second" {
		t.Fatalf("expected last write to win, got %q", author.Name)
	}
}
