package seo

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dogbodymind/go-site/internal/content"
	"github.com/dogbodymind/go-site/internal/locale"
)

// staticPaths are the non-post pages present on every locale's domain.
var staticPaths = []string{"/", "/blog", "/about", "/privacy", "/imprint"}

// Sitemap renders the sitemap XML for one locale's canonical domain from its
// post list. Duplicate locations are dropped; entries are sorted for stable
// output.
func Sitemap(target locale.Code, posts []*content.Post, fallback time.Time) string {
	type entry struct {
		location string
		lastMod  time.Time
	}

	entries := make([]entry, 0, len(posts)+len(staticPaths))
	seen := map[string]struct{}{}

	add := func(path string, lastMod time.Time) {
		location := CanonicalURL(target, path)
		if _, ok := seen[location]; ok {
			return
		}
		seen[location] = struct{}{}
		if lastMod.IsZero() {
			lastMod = fallback
		}
		entries = append(entries, entry{location: location, lastMod: lastMod})
	}

	for _, path := range staticPaths {
		add(path, fallback)
	}
	for _, post := range posts {
		if post == nil || strings.TrimSpace(post.Slug.Current) == "" {
			continue
		}
		var lastMod time.Time
		if post.PublishedAt != nil {
			lastMod = *post.PublishedAt
		}
		add("/blog/"+post.Slug.Current, lastMod)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].location < entries[j].location
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, e := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", e.location))
		if !e.lastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", e.lastMod.UTC().Format(time.RFC3339)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

// Robots renders robots.txt for a locale's domain with its sitemap pointer.
func Robots(target locale.Code) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	builder.WriteString("Disallow: /api/\n")
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Sitemap: %s\n", CanonicalURL(target, "/sitemap.xml")))
	return builder.String()
}
