package visits

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackThrough(t *testing.T, s *Store, req *http.Request) {
	t.Helper()
	h := Track(s, func(r *http.Request) string { return "203.0.113.1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	h.ServeHTTP(httptest.NewRecorder(), req)
}

// waitForVisits polls because recording is asynchronous.
func waitForVisits(t *testing.T, s *Store, want int64) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st, err := s.Stats(context.Background())
		require.NoError(t, err)
		if st.TotalVisits == want {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestTrackRecordsPageViews(t *testing.T) {
	s := newTestStore(t)
	trackThrough(t, s, httptest.NewRequest(http.MethodGet, "/blog", nil))
	assert.True(t, waitForVisits(t, s, 1), "visit was not recorded")
}

func TestTrackHonorsDoNotTrack(t *testing.T) {
	s := newTestStore(t)
	req := httptest.NewRequest(http.MethodGet, "/blog", nil)
	req.Header.Set("DNT", "1")
	trackThrough(t, s, req)

	time.Sleep(50 * time.Millisecond)
	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.TotalVisits)
}

func TestTrackSkipsNonPagePaths(t *testing.T) {
	for _, path := range []string{"/assets/site.css", "/healthz", "/admin/stats", "/favicon.ico"} {
		assert.True(t, skipPath(path), "path %q", path)
	}
	for _, path := range []string{"/", "/blog", "/contact", "/blog/some-post"} {
		assert.False(t, skipPath(path), "path %q", path)
	}
}

func TestTrackNilStore(t *testing.T) {
	// must not panic
	trackThrough(t, nil, httptest.NewRequest(http.MethodGet, "/", nil))
}
