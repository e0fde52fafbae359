package content

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/dogbodymind/go-site/internal/locale"
)

const readingWordsPerMinute = 200

// DisplayAuthor is the flattened author shape consumed by templates.
type DisplayAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// DisplayCategory is the flattened category shape consumed by templates.
type DisplayCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// DisplayPost is the fully flattened, locale-resolved view model. By
// construction it contains no localized-field containers and no unresolved
// references: every field is a concrete value in the target locale.
type DisplayPost struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Slug             string            `json:"slug"`
	Excerpt          string            `json:"excerpt"`
	Content          json.RawMessage   `json:"content,omitempty"`
	CoverImageURL    string            `json:"coverImageUrl,omitempty"`
	CoverImageAlt    string            `json:"coverImageAlt,omitempty"`
	Author           DisplayAuthor     `json:"author"`
	Categories       []DisplayCategory `json:"categories"`
	Tags             []string          `json:"tags,omitempty"`
	PublishedAt      *time.Time        `json:"publishedAt,omitempty"`
	FormattedDate    string            `json:"formattedDate,omitempty"`
	ReadingTime      int               `json:"readingTime"`
	Featured         bool              `json:"featured"`
	FeaturedCategory string            `json:"featuredCategory,omitempty"`
	References       json.RawMessage   `json:"references,omitempty"`
}

// NewDisplayPost flattens a resolved aggregate for the given locale. Title
// and slug are contractually required and fail loudly when absent at every
// fallback tier; optional fields resolve to empty values instead.
func NewDisplayPost(resolved *ResolvedPost, target locale.Code) (*DisplayPost, error) {
	if resolved == nil || resolved.Post == nil {
		return nil, &MissingReferenceError{Type: "post", Locale: target}
	}
	post := resolved.Post

	title := locale.ResolveString(post.Title, target)
	if title == "" {
		return nil, &RequiredFieldError{Field: "title", ID: post.ID, Locale: target}
	}
	if strings.TrimSpace(post.Slug.Current) == "" {
		return nil, &RequiredFieldError{Field: "slug", ID: post.ID, Locale: target}
	}
	if resolved.Author == nil {
		return nil, &MissingReferenceError{Type: string(RefAuthor), ID: post.ID, Locale: target}
	}

	body := locale.ResolveRaw(post.Body, target)
	display := &DisplayPost{
		ID:               post.ID,
		Title:            title,
		Slug:             post.Slug.Current,
		Excerpt:          locale.ResolveString(post.Excerpt, target),
		Content:          body,
		CoverImageURL:    post.CoverImageURL,
		CoverImageAlt:    locale.ResolveString(post.CoverImageAlt, target),
		Tags:             post.Tags,
		PublishedAt:      post.PublishedAt,
		ReadingTime:      ReadingTime(body),
		Featured:         post.Featured,
		FeaturedCategory: post.FeaturedCategory,
		References:       locale.ResolveRaw(post.References, target),
		Author: DisplayAuthor{
			ID:   resolved.Author.ID,
			Name: resolved.Author.Name,
			Slug: resolved.Author.Slug.Current,
		},
	}

	for _, category := range resolved.Categories {
		if category == nil {
			continue
		}
		display.Categories = append(display.Categories, DisplayCategory{
			ID:    category.ID,
			Title: locale.ResolveString(category.Title, target),
			Slug:  category.Slug.Current,
		})
	}

	if post.PublishedAt != nil {
		display.FormattedDate = FormatDate(*post.PublishedAt, target)
	}
	return display, nil
}

// DisplaySummary is the lightweight listing shape for index pages. It skips
// body resolution and carries only the reference IDs the card needs.
type DisplaySummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	CoverImageURL string     `json:"coverImageUrl,omitempty"`
	CoverImageAlt string     `json:"coverImageAlt,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	FormattedDate string     `json:"formattedDate,omitempty"`
	Featured      bool       `json:"featured"`
}

// NewDisplaySummary flattens a post for listings. Posts without a resolvable
// title or slug are not listable and fail the same way NewDisplayPost does.
func NewDisplaySummary(post *Post, target locale.Code) (*DisplaySummary, error) {
	if post == nil {
		return nil, &MissingReferenceError{Type: "post", Locale: target}
	}
	title := locale.ResolveString(post.Title, target)
	if title == "" {
		return nil, &RequiredFieldError{Field: "title", ID: post.ID, Locale: target}
	}
	if strings.TrimSpace(post.Slug.Current) == "" {
		return nil, &RequiredFieldError{Field: "slug", ID: post.ID, Locale: target}
	}

	summary := &DisplaySummary{
		ID:            post.ID,
		Title:         title,
		Slug:          post.Slug.Current,
		Excerpt:       locale.ResolveString(post.Excerpt, target),
		CoverImageURL: post.CoverImageURL,
		CoverImageAlt: locale.ResolveString(post.CoverImageAlt, target),
		PublishedAt:   post.PublishedAt,
		Featured:      post.Featured,
	}
	if post.PublishedAt != nil {
		summary.FormattedDate = FormatDate(*post.PublishedAt, target)
	}
	return summary, nil
}

// FormatDate renders a publish date in the locale's own convention.
func FormatDate(t time.Time, target locale.Code) string {
	layout := "2 January 2006"
	if target == locale.EN {
		layout = "January 2, 2006"
	}
	return monday.Format(t, layout, target.MondayLocale())
}

// ReadingTime estimates minutes to read a portable-text body at 200 words per
// minute, never reporting less than one minute for non-empty content.
func ReadingTime(body json.RawMessage) int {
	if !locale.RawPresent(body) {
		return 0
	}
	minutes := (countWords(body) + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// countWords walks portable-text blocks and counts whitespace-separated words
// in span text. Unknown node shapes are skipped rather than failing.
func countWords(body json.RawMessage) int {
	if !locale.RawPresent(body) {
		return 0
	}

	var blocks []struct {
		Children []struct {
			Text string `json:"text"`
		} `json:"children"`
	}
	if err := json.Unmarshal(body, &blocks); err != nil {
		return 0
	}

	total := 0
	for _, block := range blocks {
		for _, child := range block.Children {
			total += len(strings.Fields(child.Text))
		}
	}
	return total
}
