package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"averyquinn.dev/portfolio-web/internal/content"
	"averyquinn.dev/portfolio-web/internal/markdown"
	mw "averyquinn.dev/portfolio-web/internal/middleware"
	"averyquinn.dev/portfolio-web/internal/seo"
)

// postRenderCache holds sanitized HTML per slug so markdown is converted once
// per update, not per request.
var postRenderCache = struct {
	mu    sync.Mutex
	items map[string]renderedPostEntry
}{items: map[string]renderedPostEntry{}}

type renderedPostEntry struct {
	html      string
	toc       []markdown.Heading
	etag      string
	updatedAt time.Time
}

// BlogIndexHandler renders the blog listing with category and search filters.
// htmx requests receive only the list fragment plus an HX-Push-Url header so
// filtered views land in browser history.
func BlogIndexHandler(w http.ResponseWriter, r *http.Request) {
	category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	posts, err := postStore.List(content.ListOptions{Category: category, Search: search})
	if err != nil {
		log.Printf("blog: list: %v", err)
		http.Error(w, "failed to load posts", http.StatusInternalServerError)
		return
	}
	cats, err := postStore.Categories()
	if err != nil {
		log.Printf("blog: categories: %v", err)
		http.Error(w, "failed to load posts", http.StatusInternalServerError)
		return
	}

	vm := buildPageData(r, "Blog")
	vm.View = "blog"
	vm.SEO.Description = "Notes on backend systems, resilience patterns, and the occasional project write-up."
	vm.SEO.Canonical = siteURL + "/blog"
	vm.Blog = buildBlogListData(posts, cats, category, search)

	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Push-Url", blogPushURL(category, search))
		renderFragment(w, r, "blog_list", vm)
		return
	}
	render(w, r, vm)
}

func buildBlogListData(posts []content.Post, cats []content.CategoryCount, active, search string) *BlogListData {
	data := &BlogListData{Active: active, Search: search}
	data.Categories = append(data.Categories, CategoryLink{
		Name:   "All",
		Href:   "/blog",
		Active: active == "",
	})
	for _, c := range cats {
		data.Categories = append(data.Categories, CategoryLink{
			Name:   c.Name,
			Href:   "/blog?category=" + url.QueryEscape(c.Name),
			Count:  c.Count,
			Active: active == c.Name,
		})
	}
	for _, p := range posts {
		data.Posts = append(data.Posts, PostCard{
			Slug:     p.Slug,
			Title:    p.Title,
			Summary:  p.Summary,
			Category: p.Category,
			Tags:     p.Tags,
			Date:     fmtDate(p.PublishedAt),
			Reading:  p.ReadingTimeMinutes,
		})
	}
	return data
}

func blogPushURL(category, search string) string {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("q", search)
	}
	if len(q) == 0 {
		return "/blog"
	}
	return "/blog?" + q.Encode()
}

// BlogPostHandler renders a single post with conditional request support.
func BlogPostHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := postStore.Get(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			NotFoundHandler(w, r)
			return
		}
		log.Printf("blog: get %s: %v", slug, err)
		http.Error(w, "failed to load post", http.StatusInternalServerError)
		return
	}

	entry, err := renderedPost(post)
	if err != nil {
		log.Printf("blog: render %s: %v", slug, err)
		http.Error(w, "failed to render post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=600")
	w.Header().Set("ETag", entry.etag)
	lastMod := post.UpdatedAt
	if lastMod.IsZero() {
		lastMod = post.PublishedAt
	}
	if !lastMod.IsZero() {
		w.Header().Set("Last-Modified", lastMod.UTC().Format(http.TimeFormat))
	}
	if notModified(r, entry.etag, lastMod) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	vm := buildPageData(r, post.Title)
	vm.View = "post"
	vm.SEO.Title = firstNonEmpty(post.SEO.MetaTitle, post.Title+" | "+vm.Site.Name)
	vm.SEO.Description = firstNonEmpty(post.SEO.MetaDescription, post.Summary)
	vm.SEO.Canonical = siteURL + "/blog/" + post.Slug
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = vm.SEO.Description
	vm.SEO.OG.Type = "article"
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.Image = firstNonEmpty(post.SEO.OGImage, post.HeroImageURL)

	crumbs := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
	for _, c := range vm.Breadcrumbs {
		name := c.Label
		if c.Href == "/blog/"+post.Slug {
			name = post.Title
		}
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: name, Item: siteURL + c.Href})
	}
	var published string
	if !post.PublishedAt.IsZero() {
		published = post.PublishedAt.UTC().Format(time.RFC3339)
	}
	vm.SEO.JSONLD = []string{
		seo.JSON(seo.Article(post.Title, vm.SEO.Canonical, vm.SEO.OG.Image, post.Author, published)),
		seo.JSON(seo.BreadcrumbList(crumbs)),
	}

	vm.Post = &BlogPostData{
		Slug:      post.Slug,
		Title:     post.Title,
		Summary:   post.Summary,
		Category:  post.Category,
		Tags:      post.Tags,
		Author:    post.Author,
		Date:      fmtDate(post.PublishedAt),
		Updated:   fmtDate(post.UpdatedAt),
		Reading:   post.ReadingTimeMinutes,
		BodyHTML:  entry.html,
		TOC:       entry.toc,
		HeroImage: post.HeroImageURL,
	}
	render(w, r, vm)
}

func renderedPost(post content.Post) (renderedPostEntry, error) {
	postRenderCache.mu.Lock()
	defer postRenderCache.mu.Unlock()
	if entry, ok := postRenderCache.items[post.Slug]; ok && entry.updatedAt.Equal(post.UpdatedAt) {
		return entry, nil
	}
	html, err := mdRenderer.Render(post.Body)
	if err != nil {
		return renderedPostEntry{}, err
	}
	sum := sha256.Sum256([]byte(html))
	entry := renderedPostEntry{
		html:      html,
		toc:       markdown.ExtractHeadings(html),
		etag:      `W/"` + hex.EncodeToString(sum[:16]) + `"`,
		updatedAt: post.UpdatedAt,
	}
	postRenderCache.items[post.Slug] = entry
	return entry, nil
}

func notModified(r *http.Request, etag string, lastMod time.Time) bool {
	if inm := r.Header.Get("If-None-Match"); inm != "" {
		for _, cand := range strings.Split(inm, ",") {
			cand = strings.TrimSpace(cand)
			if cand == "*" || cand == etag {
				return true
			}
		}
		return false
	}
	if ims := r.Header.Get("If-Modified-Since"); ims != "" && !lastMod.IsZero() {
		if t, err := http.ParseTime(ims); err == nil {
			return !lastMod.UTC().Truncate(time.Second).After(t)
		}
	}
	return false
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
