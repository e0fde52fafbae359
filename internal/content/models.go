package content

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dogbodymind/go-site/internal/locale"
)

// ReferenceType partitions heterogeneous reference lookups.
type ReferenceType string

const (
	RefAuthor       ReferenceType = "author"
	RefCategory     ReferenceType = "category"
	RefOrganization ReferenceType = "organization"
)

// Reference is a raw pointer from one document to another.
type Reference struct {
	Ref  string `json:"_ref"`
	Type string `json:"_type"`
}

// IsZero reports whether the reference points nowhere.
func (r Reference) IsZero() bool {
	return strings.TrimSpace(r.Ref) == ""
}

// Slug is the store's wrapped slug value.
type Slug struct {
	Current string `json:"current"`
}

// Post is the raw blog-post document. Localized fields arrive as keyed arrays
// and stay unresolved until a display model is built.
type Post struct {
	ID               string                         `json:"_id"`
	Slug             Slug                           `json:"slug"`
	Title            locale.Values[string]          `json:"title"`
	Excerpt          locale.Values[string]          `json:"excerpt"`
	Body             locale.Values[json.RawMessage] `json:"body"`
	References       locale.Values[json.RawMessage] `json:"references"`
	CoverImageURL    string                         `json:"coverImageUrl"`
	CoverImageAlt    locale.Values[string]          `json:"coverImageAlt"`
	Author           *Reference                     `json:"author"`
	Categories       []Reference                    `json:"categories"`
	Tags             []string                       `json:"tags"`
	PublishedAt      *time.Time                     `json:"publishedAt"`
	Featured         bool                           `json:"featured"`
	FeaturedCategory string                         `json:"featuredCategory"`
}

// Author is the raw author document. Names are not localized; bios are.
type Author struct {
	ID       string                `json:"_id"`
	Name     string                `json:"name"`
	Slug     Slug                  `json:"slug"`
	Bio      locale.Values[string] `json:"bio"`
	ImageURL string                `json:"imageUrl"`
}

// Category is the raw category document. Parent is at most one level deep.
type Category struct {
	ID          string                `json:"_id"`
	Title       locale.Values[string] `json:"title"`
	Slug        Slug                  `json:"slug"`
	Description locale.Values[string] `json:"description"`
	Parent      *Reference            `json:"parent"`
}

// Organization is the singleton publisher document. Mandatory global
// configuration: resolution sessions refuse to start without it.
type Organization struct {
	ID          string                `json:"_id"`
	Name        string                `json:"name"`
	LogoURL     string                `json:"logoUrl"`
	SameAs      []string              `json:"sameAs"`
	Description locale.Values[string] `json:"description"`
}

// ResolvedPost is the reference-resolved aggregate handed to rendering and
// schema generation. Categories preserve the post's declared order; the first
// one is the primary category.
type ResolvedPost struct {
	Post            *Post
	Author          *Author
	PrimaryCategory *Category
	Categories      []*Category
	AllCategories   []*Category
	Organization    *Organization
}

// CategoryWithParent pairs a category with its resolved parent, when declared.
type CategoryWithParent struct {
	Category *Category
	Parent   *Category
}
