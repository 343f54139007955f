package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Test Person
headline: Does things
email: test@example.com
links:
  - label: GitHub
    url: https://github.com/test
skills:
  - name: Languages
    items: [Go, Rust]
projects:
  - title: Demo
    description: A demo project
    tech_stack: [Go]
    year: 2025
    featured: true
experience:
  - role: Engineer
    company: Acme
    start: Jan 2020
    end: Present
    bullets: [Did work]
education:
  - degree: B.S.
    institution: State U
`), 0o644))

	p, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "Test Person", p.Name)
	assert.Equal(t, "Does things", p.Headline)
	require.Len(t, p.Links, 1)
	assert.Equal(t, "GitHub", p.Links[0].Label)
	require.Len(t, p.SkillGroups, 1)
	assert.Equal(t, []string{"Go", "Rust"}, p.SkillGroups[0].Skills)
	require.Len(t, p.Projects, 1)
	assert.True(t, p.Projects[0].Featured)
	assert.Equal(t, 2025, p.Projects[0].Year)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Present", p.Experience[0].End)
	require.Len(t, p.Education, 1)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	p, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Name, p.Name)
	assert.NotEmpty(t, p.SkillGroups)
	assert.NotEmpty(t, p.Projects)
}

func TestLoadFillsGapsFromDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headline: Sparse file\n"), 0o644))

	p, err := NewLoader(path).Load()
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, "Sparse file", p.Headline)
	assert.Equal(t, def.Name, p.Name)
	assert.Equal(t, def.Email, p.Email)
	assert.Equal(t, def.SiteURL, p.SiteURL)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed\n"), 0o644))

	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestLoadCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Before\n"), 0o644))

	l := NewLoader(path)
	first, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "Before", first.Name)

	require.NoError(t, os.WriteFile(path, []byte("name: After\n"), 0o644))
	second, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "Before", second.Name, "cached copy serves until the TTL lapses")

	l.SetCacheDuration(time.Nanosecond)
	third, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "After", third.Name)
}
