package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a post cannot be located.
var ErrNotFound = errors.New("content: not found")

// Post represents a blog post sourced from local markdown.
type Post struct {
	Slug               string
	Title              string
	Summary            string
	Body               string // raw markdown
	Category           string
	Tags               []string
	Author             string
	HeroImageURL       string
	ReadingTimeMinutes int
	Draft              bool
	PublishedAt        time.Time
	UpdatedAt          time.Time
	SEO                PostSEO
}

// PostSEO contains optional per-post SEO metadata overrides.
type PostSEO struct {
	MetaTitle       string
	MetaDescription string
	OGImage         string
}

// CategoryCount pairs a category name with the number of published posts in it.
type CategoryCount struct {
	Name  string
	Count int
}

// ListOptions controls post listing.
type ListOptions struct {
	Category string
	Search   string
	Limit    int
}

type frontMatter struct {
	Title       string         `yaml:"title"`
	Summary     string         `yaml:"summary"`
	Category    string         `yaml:"category"`
	Tags        []string       `yaml:"tags"`
	Author      string         `yaml:"author"`
	HeroImage   string         `yaml:"hero_image"`
	ReadingTime int            `yaml:"reading_time"`
	Draft       bool           `yaml:"draft"`
	Published   string         `yaml:"published"`
	Updated     string         `yaml:"updated"`
	SEO         frontMatterSEO `yaml:"seo"`
}

type frontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

const defaultContentDir = "content/blog"

// Store loads posts from a directory of markdown files, with a compiled-in
// fallback set when the directory is absent or empty.
type Store struct {
	dir string

	mu      sync.RWMutex
	cached  []Post
	expires time.Time
	ttl     time.Duration
}

// NewStore constructs a Store rooted at dir. An empty dir uses the default.
func NewStore(dir string) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	return &Store{dir: dir, ttl: 5 * time.Minute}
}

// SetCacheDuration overrides the in-memory cache duration (primarily for tests).
func (s *Store) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.expires = time.Time{}
	s.mu.Unlock()
}

// List returns published posts, newest first, after applying filters.
func (s *Store) List(opts ListOptions) ([]Post, error) {
	posts, err := s.load()
	if err != nil {
		return nil, err
	}
	return filterPosts(posts, opts), nil
}

// Get returns a single published post by slug.
func (s *Store) Get(slug string) (Post, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Post{}, ErrNotFound
	}
	posts, err := s.load()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return Post{}, ErrNotFound
}

// Categories returns the distinct categories of published posts with counts,
// sorted alphabetically.
func (s *Store) Categories() ([]CategoryCount, error) {
	posts, err := s.load()
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, p := range posts {
		if p.Category != "" {
			counts[p.Category]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// load returns the cached published post set, reloading from disk when the
// cache has expired. Drafts never leave this function.
func (s *Store) load() ([]Post, error) {
	now := time.Now()
	s.mu.RLock()
	if now.Before(s.expires) && s.cached != nil {
		posts := s.cached
		s.mu.RUnlock()
		return posts, nil
	}
	s.mu.RUnlock()

	posts, err := readPostsDir(s.dir)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		posts = fallbackPosts()
	}
	published := posts[:0:0]
	for _, p := range posts {
		if p.Draft {
			continue
		}
		published = append(published, p)
	}
	sortPosts(published)

	s.mu.Lock()
	s.cached = published
	s.expires = now.Add(s.ttl)
	s.mu.Unlock()
	return published, nil
}

func readPostsDir(dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var posts []Post
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		p, err := readPostFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func readPostFile(file string) (Post, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Post{}, err
	}
	info, statErr := os.Stat(file)
	if statErr != nil {
		info = nil
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Post{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	slug := strings.TrimSuffix(filepath.Base(file), ".md")
	p := Post{
		Slug:               sanitizeSlug(slug),
		Title:              strings.TrimSpace(front.Title),
		Summary:            strings.TrimSpace(front.Summary),
		Body:               body,
		Category:           strings.ToLower(strings.TrimSpace(front.Category)),
		Tags:               append([]string(nil), front.Tags...),
		Author:             strings.TrimSpace(front.Author),
		HeroImageURL:       strings.TrimSpace(front.HeroImage),
		ReadingTimeMinutes: front.ReadingTime,
		Draft:              front.Draft,
		SEO: PostSEO{
			MetaTitle:       strings.TrimSpace(front.SEO.Title),
			MetaDescription: strings.TrimSpace(front.SEO.Description),
			OGImage:         strings.TrimSpace(front.SEO.OGImage),
		},
	}
	p.PublishedAt = parseDate(front.Published)
	p.UpdatedAt = parseDate(front.Updated)
	if p.UpdatedAt.IsZero() && info != nil {
		p.UpdatedAt = info.ModTime()
	}
	if p.Title == "" {
		p.Title = prettifySlug(p.Slug)
	}
	if p.ReadingTimeMinutes <= 0 {
		p.ReadingTimeMinutes = estimateReadingTime(body)
	}
	return p, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimPrefix(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// estimateReadingTime assumes about 200 words per minute.
func estimateReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func filterPosts(posts []Post, opts ListOptions) []Post {
	category := strings.ToLower(strings.TrimSpace(opts.Category))
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" {
			hay := strings.ToLower(p.Title + " " + p.Summary + " " + strings.Join(p.Tags, " "))
			if !strings.Contains(hay, search) {
				continue
			}
		}
		filtered = append(filtered, p)
		if opts.Limit > 0 && len(filtered) >= opts.Limit {
			break
		}
	}
	out := make([]Post, len(filtered))
	for i, p := range filtered {
		out[i] = clonePost(p)
	}
	return out
}

func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		switch {
		case !a.PublishedAt.IsZero() && !b.PublishedAt.IsZero():
			if !a.PublishedAt.Equal(b.PublishedAt) {
				return a.PublishedAt.After(b.PublishedAt)
			}
		case !a.PublishedAt.IsZero():
			return true
		case !b.PublishedAt.IsZero():
			return false
		}
		return a.Slug < b.Slug
	})
}

func clonePost(p Post) Post {
	clone := p
	if p.Tags != nil {
		clone.Tags = append([]string(nil), p.Tags...)
	}
	return clone
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") {
		return ""
	}
	if strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
