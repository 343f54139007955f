package main

import (
	"log"
	"net/http"

	"averyquinn.dev/portfolio-web/internal/profile"
	"averyquinn.dev/portfolio-web/internal/seo"
)

// HomeHandler renders the landing page: intro, skills, projects, experience,
// and education from the profile.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	p, err := profileLoader.Load()
	if err != nil {
		log.Printf("profile: %v", err)
		p = profile.Default()
	}

	vm := buildPageData(r, p.Name)
	vm.View = "home"
	vm.SEO.Title = p.Name + " – " + p.Headline
	vm.SEO.Description = p.Intro
	vm.SEO.Canonical = siteURL + "/"
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = p.Intro
	vm.SEO.OG.Type = "website"
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = p.Name

	sameAs := make([]string, 0, len(p.Links))
	for _, l := range p.Links {
		sameAs = append(sameAs, l.URL)
	}
	vm.SEO.JSONLD = []string{
		seo.JSON(seo.Person(p.Name, siteURL, sameAs)),
		seo.JSON(seo.WebSite(p.Name, siteURL)),
	}

	vm.Home = &HomeData{Profile: p}
	render(w, r, vm)
}
