package main

import (
	"log"
	"net/http"

	"averyquinn.dev/portfolio-web/internal/markdown"
	mw "averyquinn.dev/portfolio-web/internal/middleware"
	"averyquinn.dev/portfolio-web/internal/nav"
	"averyquinn.dev/portfolio-web/internal/profile"
	"averyquinn.dev/portfolio-web/internal/seo"
)

// PageData is the shared view model for the base layout. View selects which
// page block the layout renders.
type PageData struct {
	View  string
	Title string
	Path  string

	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	SEO         seo.Meta
	CSRFToken   string
	Site        SiteInfo

	Home    *HomeData
	Blog    *BlogListData
	Post    *BlogPostData
	Contact *ContactData
}

// SiteInfo carries header/footer fields shared by every page.
type SiteInfo struct {
	Name  string
	URL   string
	Email string
	Links []profile.Link
}

// HomeData is the view model for the landing page.
type HomeData struct {
	Profile profile.Profile
}

// BlogListData is the view model for the blog index and its htmx fragment.
type BlogListData struct {
	Posts      []PostCard
	Categories []CategoryLink
	Active     string // active category filter, "" for all
	Search     string
}

// PostCard is a single listing entry.
type PostCard struct {
	Slug     string
	Title    string
	Summary  string
	Category string
	Tags     []string
	Date     string
	Reading  int
}

// CategoryLink is a filter button in the blog listing.
type CategoryLink struct {
	Name   string
	Href   string
	Count  int
	Active bool
}

// BlogPostData is the view model for a rendered post page.
type BlogPostData struct {
	Slug      string
	Title     string
	Summary   string
	Category  string
	Tags      []string
	Author    string
	Date      string
	Updated   string
	Reading   int
	BodyHTML  string
	TOC       []markdown.Heading
	HeroImage string
}

// ContactData is the view model for the contact page and its fragments.
type ContactData struct {
	Name    string
	Email   string
	Message string
	Errors  map[string]string
	Sent    bool
	Failure string
}

func buildPageData(r *http.Request, title string) PageData {
	path := r.URL.Path
	vm := PageData{
		Title:       title,
		Path:        path,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
		CSRFToken:   mw.GetSession(r).CSRFToken,
		Site:        siteInfo(),
	}
	vm.SEO.Title = title + " | " + vm.Site.Name
	return vm
}

func siteInfo() SiteInfo {
	p, err := profileLoader.Load()
	if err != nil {
		log.Printf("profile: %v", err)
		p = profile.Default()
	}
	return SiteInfo{
		Name:  p.Name,
		URL:   siteURL,
		Email: p.Email,
		Links: p.Links,
	}
}
