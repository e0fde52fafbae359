package http

import (
	"net/http"
	"time"

	"github.com/dogbodymind/go-site/internal/content"
	"github.com/dogbodymind/go-site/internal/locale"
	"github.com/dogbodymind/go-site/internal/seo"
)

type postResponse struct {
	Post *content.DisplayPost `json:"post"`
	SEO  postSEO              `json:"seo"`
}

type postSEO struct {
	Canonical   string          `json:"canonical"`
	Alternates  []seo.Alternate `json:"alternates"`
	Article     map[string]any  `json:"article"`
	Breadcrumbs map[string]any  `json:"breadcrumbs"`
}

type categoryResponse struct {
	Category categorySummary  `json:"category"`
	Parent   *categorySummary `json:"parent,omitempty"`
}

type categorySummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type authorSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Bio  string `json:"bio,omitempty"`
}

func (api *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *API) handleHome(w http.ResponseWriter, r *http.Request) {
	sess, err := api.session(r)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	org, err := sess.Organization()
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"organization": seo.Organization(org),
		"website":      seo.WebSite(org, sess.Locale()),
		"canonical":    seo.CanonicalURL(sess.Locale(), "/"),
		"alternates":   seo.Alternates("/"),
	})
}

func (api *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
	sess, err := api.session(r)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	posts, err := sess.AllPosts(r.Context())
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	summaries := make([]*content.DisplaySummary, 0, len(posts))
	for _, post := range posts {
		summary, err := content.NewDisplaySummary(post, sess.Locale())
		if err != nil {
			api.logger.Warn("skipping unlistable post", "error", err)
			continue
		}
		summaries = append(summaries, summary)
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": summaries})
}

func (api *API) handleGetPost(w http.ResponseWriter, r *http.Request) {
	sess, err := api.session(r)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	slug := normalizeSlugParam(r, "slug")
	resolved, err := sess.Post(r.Context(), slug)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	display, err := content.NewDisplayPost(resolved, sess.Locale())
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	path := "/blog/" + display.Slug
	writeJSON(w, http.StatusOK, postResponse{
		Post: display,
		SEO: postSEO{
			Canonical:   seo.CanonicalURL(sess.Locale(), path),
			Alternates:  seo.Alternates(path),
			Article:     seo.Article(display, resolved.Organization, sess.Locale()),
			Breadcrumbs: seo.Breadcrumbs(display, sess.Locale()),
		},
	})
}

func (api *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	sess, err := api.session(r)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	categories, err := sess.Categories()
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	out := make([]categorySummary, 0, len(categories))
	for _, category := range categories {
		if category == nil {
			continue
		}
		out = append(out, newCategorySummary(category, sess.Locale()))
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (api *API) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	sess, err := api.session(r)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	result, err := sess.CategoryWithParent(r.Context(), normalizeSlugParam(r, "id"))
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	response := categoryResponse{Category: newCategorySummary(result.Category, sess.Locale())}
	if result.Parent != nil {
		parent := newCategorySummary(result.Parent, sess.Locale())
		response.Parent = &parent
	}
	writeJSON(w, http.StatusOK, response)
}

func (api *API) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	sess, err := api.session(r)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	authors, err := sess.AllAuthors(r.Context())
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	out := make([]authorSummary, 0, len(authors))
	for _, author := range authors {
		if author == nil {
			continue
		}
		out = append(out, authorSummary{
			ID:   author.ID,
			Name: author.Name,
			Slug: author.Slug.Current,
			Bio:  locale.ResolveString(author.Bio, sess.Locale()),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"authors": out})
}

func (api *API) handleSitemap(w http.ResponseWriter, r *http.Request) {
	target := hostLocale(r)
	sess, err := api.sessions(r.Context(), target)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	posts, err := sess.AllPosts(r.Context())
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(seo.Sitemap(target, posts, time.Now().UTC())))
}

func (api *API) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.Robots(hostLocale(r))))
}

func newCategorySummary(category *content.Category, target locale.Code) categorySummary {
	return categorySummary{
		ID:    category.ID,
		Title: locale.ResolveString(category.Title, target),
		Slug:  category.Slug.Current,
	}
}
