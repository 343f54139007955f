package main

import (
	"context"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"

	"averyquinn.dev/portfolio-web/internal/content"
	"averyquinn.dev/portfolio-web/internal/mailer"
	"averyquinn.dev/portfolio-web/internal/markdown"
	mw "averyquinn.dev/portfolio-web/internal/middleware"
	"averyquinn.dev/portfolio-web/internal/profile"
	"averyquinn.dev/portfolio-web/internal/visits"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode is set in main() based on env: PORTFOLIO_WEB_DEV (preferred) or DEV (fallback)
	devMode   bool
	tmplCache *template.Template

	siteURL = "https://averyquinn.dev"

	postStore     *content.Store
	profileLoader *profile.Loader
	mailClient    *mailer.Client
	visitStore    *visits.Store
	mdRenderer    = markdown.New()
)

func main() {
	var (
		addr        string
		tmplPath    string
		pubPath     string
		contentPath string
		profilePath string
		dbPath      string
	)
	// Port resolution: prefer PORTFOLIO_WEB_PORT, then PORT, else 8080
	port := os.Getenv("PORTFOLIO_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.StringVar(&contentPath, "content", "content/blog", "blog content directory")
	flag.StringVar(&profilePath, "profile", "data/profile.yaml", "profile data file")
	flag.StringVar(&dbPath, "db", "data/portfolio.db", "sqlite database path")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	if v := os.Getenv("PORTFOLIO_WEB_SITE_URL"); v != "" {
		siteURL = strings.TrimRight(v, "/")
	}

	// Dev mode: prefer PORTFOLIO_WEB_DEV, fallback to DEV
	devMode = os.Getenv("PORTFOLIO_WEB_DEV") != "" || os.Getenv("DEV") != ""

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	postStore = content.NewStore(contentPath)
	profileLoader = profile.NewLoader(profilePath)
	mailClient = mailer.NewFromEnv()

	store, err := visits.Open(dbPath)
	if err != nil {
		log.Fatalf("open visit store: %v", err)
	}
	visitStore = store
	defer visitStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	visits.StartRetentionCleanup(ctx, visitStore)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	log.Printf("web listening on %s (devMode=%v)", addr, devMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	// Logger sits above Session/CSRF so rejected requests still get a log line.
	r.Use(mw.Logger)
	r.Use(mw.Session)
	r.Use(mw.CSRF)
	r.Use(visits.Track(visitStore, mw.ClientIP))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/blog", BlogIndexHandler)
	r.Get("/blog/{slug}", BlogPostHandler)
	r.Get("/contact", ContactPageHandler)
	r.Post("/contact", ContactSubmitHandler)
	r.Get("/admin/stats", AdminStatsHandler)

	r.NotFound(NotFoundHandler)
	return r
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":  time.Now,
		"safe": func(s string) template.HTML { return template.HTML(s) },
		// JSON-LD sits inside a script element, which html/template escapes
		// as JS; template.JS passes the pre-built JSON through untouched.
		"jsonld": func(s string) template.JS { return template.JS(s) },
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func lookupTemplates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	if tmplCache == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return nil
	}
	return tmplCache
}

// render executes the base layout. In dev mode, templates are reparsed on each request.
func render(w http.ResponseWriter, r *http.Request, data any) {
	t := lookupTemplates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// renderFragment executes a named template block for htmx swaps.
func renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := lookupTemplates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// NotFoundHandler renders the shared 404 page.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	vm := buildPageData(r, "Not Found")
	vm.View = "notfound"
	vm.SEO.Robots = "noindex"
	t := lookupTemplates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := t.ExecuteTemplate(w, "base", vm); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
	}
}
