package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is the site owner's data rendered on the home page.
type Profile struct {
	Name     string `yaml:"name"`
	Headline string `yaml:"headline"`
	Intro    string `yaml:"intro"`
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
	SiteURL  string `yaml:"site_url"`

	Links       []Link       `yaml:"links"`
	SkillGroups []SkillGroup `yaml:"skills"`
	Projects    []Project    `yaml:"projects"`
	Experience  []Experience `yaml:"experience"`
	Education   []Education  `yaml:"education"`
}

// Link is an external profile link shown in the header and footer.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// SkillGroup groups related skills under a heading.
type SkillGroup struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"items"`
}

// Project is a portfolio project card.
type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	TechStack   []string `yaml:"tech_stack"`
	RepoURL     string   `yaml:"repo_url"`
	LiveURL     string   `yaml:"live_url"`
	Year        int      `yaml:"year"`
	Featured    bool     `yaml:"featured"`
}

// Experience is a work history entry.
type Experience struct {
	Role    string   `yaml:"role"`
	Company string   `yaml:"company"`
	Start   string   `yaml:"start"`
	End     string   `yaml:"end"`
	Bullets []string `yaml:"bullets"`
}

// Education is a degree or certification entry.
type Education struct {
	Degree      string   `yaml:"degree"`
	Institution string   `yaml:"institution"`
	Start       string   `yaml:"start"`
	End         string   `yaml:"end"`
	Bullets     []string `yaml:"bullets"`
}

const defaultProfilePath = "data/profile.yaml"

// Loader reads the profile from disk with a TTL cache, falling back to the
// compiled-in default when the file is absent.
type Loader struct {
	path string

	mu      sync.RWMutex
	cached  *Profile
	expires time.Time
	ttl     time.Duration
}

// NewLoader constructs a Loader for the given path. An empty path uses the default.
func NewLoader(path string) *Loader {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultProfilePath
	}
	return &Loader{path: path, ttl: 5 * time.Minute}
}

// SetCacheDuration overrides the cache duration (primarily for tests).
func (l *Loader) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	l.mu.Lock()
	l.ttl = d
	l.expires = time.Time{}
	l.mu.Unlock()
}

// Load returns the current profile.
func (l *Loader) Load() (Profile, error) {
	now := time.Now()
	l.mu.RLock()
	if l.cached != nil && now.Before(l.expires) {
		p := *l.cached
		l.mu.RUnlock()
		return p, nil
	}
	l.mu.RUnlock()

	p, err := readProfile(l.path)
	if err != nil {
		return Profile{}, err
	}

	l.mu.Lock()
	l.cached = &p
	l.expires = now.Add(l.ttl)
	l.mu.Unlock()
	return p, nil
}

func readProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Profile{}, err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: parse %s: %w", path, err)
	}
	// fill gaps from the default so a sparse file still renders a full page
	def := Default()
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Email == "" {
		p.Email = def.Email
	}
	if p.SiteURL == "" {
		p.SiteURL = def.SiteURL
	}
	return p, nil
}
