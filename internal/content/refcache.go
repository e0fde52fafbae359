package content

import (
	"strings"
	"sync"

	"github.com/dogbodymind/go-site/internal/logging"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

// ReferenceCache stores resolved referenced documents for the lifetime of one
// resolution session. It only exists to avoid duplicate fetches within that
// session: nothing is evicted, nothing survives the session, and it must never
// be shared across unrelated requests. The organization is a single optional
// slot because at most one organization document exists system-wide.
//
// Guarded by a mutex because a session may issue independent fetches on
// concurrent goroutines. Last-write-wins on the same id is acceptable;
// documents are idempotent reads.
type ReferenceCache struct {
	mu           sync.RWMutex
	authors      map[string]*Author
	categories   map[string]*Category
	organization *Organization

	logger interfaces.Logger
}

// NewReferenceCache builds an empty session cache.
func NewReferenceCache(logger interfaces.Logger) *ReferenceCache {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &ReferenceCache{
		authors:    make(map[string]*Author),
		categories: make(map[string]*Category),
		logger:     logger,
	}
}

// Author returns the cached author for id, if any.
func (c *ReferenceCache) Author(id string) (*Author, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	author, ok := c.authors[id]
	return author, ok
}

// Category returns the cached category for id, if any.
func (c *ReferenceCache) Category(id string) (*Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	category, ok := c.categories[id]
	return category, ok
}

// Organization returns the cached organization singleton, if set.
func (c *ReferenceCache) Organization() (*Organization, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.organization == nil {
		return nil, false
	}
	return c.organization, true
}

// SetAuthors inserts or overwrites authors keyed by id. Documents lacking an
// id are skipped and logged as a data-quality issue, not a hard error.
func (c *ReferenceCache) SetAuthors(authors []*Author) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, author := range authors {
		if author == nil || strings.TrimSpace(author.ID) == "" {
			c.logger.Warn("skipping author document without id")
			continue
		}
		c.authors[author.ID] = author
	}
}

// SetCategories inserts or overwrites categories keyed by id, skipping
// documents without an id.
func (c *ReferenceCache) SetCategories(categories []*Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, category := range categories {
		if category == nil || strings.TrimSpace(category.ID) == "" {
			c.logger.Warn("skipping category document without id")
			continue
		}
		c.categories[category.ID] = category
	}
}

// SetOrganization fills the organization slot.
func (c *ReferenceCache) SetOrganization(org *Organization) {
	if org == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.organization = org
}

// MissingIDs returns the subset of ids not currently cached for the given
// type, preserving input order and dropping duplicates. Used to batch-fetch
// only what is needed.
func (c *ReferenceCache) MissingIDs(refType ReferenceType, ids []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	missing := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		switch refType {
		case RefAuthor:
			if _, ok := c.authors[id]; ok {
				continue
			}
		case RefCategory:
			if _, ok := c.categories[id]; ok {
				continue
			}
		case RefOrganization:
			if c.organization != nil {
				continue
			}
		}
		missing = append(missing, id)
	}
	return missing
}
