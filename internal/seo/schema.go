package seo

import (
	"time"

	"github.com/dogbodymind/go-site/internal/content"
	"github.com/dogbodymind/go-site/internal/locale"
)

// JSON-LD builders consuming the resolved data model. Everything here is a
// pure function over already-resolved aggregates; nothing fetches.

const schemaContext = "https://schema.org"

// Organization builds the publisher node.
func Organization(org *content.Organization) map[string]any {
	if org == nil {
		return nil
	}
	node := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     org.Name,
		"url":      CanonicalURL(locale.Default, "/"),
	}
	if org.LogoURL != "" {
		node["logo"] = org.LogoURL
	}
	if len(org.SameAs) > 0 {
		node["sameAs"] = org.SameAs
	}
	return node
}

// WebSite builds the site node for a locale's canonical domain.
func WebSite(org *content.Organization, target locale.Code) map[string]any {
	node := map[string]any{
		"@context":   schemaContext,
		"@type":      "WebSite",
		"url":        CanonicalURL(target, "/"),
		"inLanguage": target.LanguageTag(),
	}
	if org != nil {
		node["name"] = org.Name
	}
	return node
}

// Article builds the blog-post node from a flattened display model and its
// publisher organization.
func Article(display *content.DisplayPost, org *content.Organization, target locale.Code) map[string]any {
	if display == nil {
		return nil
	}

	node := map[string]any{
		"@context":         schemaContext,
		"@type":            "Article",
		"headline":         display.Title,
		"inLanguage":       target.LanguageTag(),
		"mainEntityOfPage": CanonicalURL(target, "/blog/"+display.Slug),
		"author": map[string]any{
			"@type": "Person",
			"name":  display.Author.Name,
			"url":   CanonicalURL(target, "/authors/"+display.Author.Slug),
		},
	}
	if display.Excerpt != "" {
		node["description"] = display.Excerpt
	}
	if display.CoverImageURL != "" {
		node["image"] = display.CoverImageURL
	}
	if display.PublishedAt != nil {
		node["datePublished"] = display.PublishedAt.UTC().Format(time.RFC3339)
	}
	if org != nil {
		node["publisher"] = Organization(org)
	}
	return node
}

// Breadcrumbs builds the home -> primary category -> post trail. The primary
// category is the first category in the post's declared order.
func Breadcrumbs(display *content.DisplayPost, target locale.Code) map[string]any {
	if display == nil {
		return nil
	}

	items := []map[string]any{
		breadcrumbItem(1, "Home", CanonicalURL(target, "/")),
	}
	position := 2
	if len(display.Categories) > 0 {
		primary := display.Categories[0]
		items = append(items, breadcrumbItem(position, primary.Title,
			CanonicalURL(target, "/categories/"+primary.Slug)))
		position++
	}
	items = append(items, breadcrumbItem(position, display.Title,
		CanonicalURL(target, "/blog/"+display.Slug)))

	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func breadcrumbItem(position int, name, url string) map[string]any {
	return map[string]any{
		"@type":    "ListItem",
		"position": position,
		"name":     name,
		"item":     url,
	}
}
