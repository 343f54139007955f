package visits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "203.0.113.1", "agent-a", "/"))
	require.NoError(t, s.Record(ctx, "203.0.113.1", "agent-a", "/blog"))
	require.NoError(t, s.Record(ctx, "203.0.113.2", "agent-b", "/"))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.TotalVisits)
	assert.Equal(t, int64(2), st.UniqueVisitors)
	assert.Equal(t, int64(3), st.VisitsThisWeek)
	require.Len(t, st.RecentVisits, 3)
	assert.Equal(t, "/", st.RecentVisits[0].Path)
}

func TestRecordNeverStoresRawIP(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const raw = "198.51.100.7"

	require.NoError(t, s.Record(ctx, raw, "", "/"))
	st, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, st.RecentVisits, 1)
	hashed := st.RecentVisits[0].HashedIP
	assert.NotEqual(t, raw, hashed)
	assert.NotContains(t, hashed, ".")
	assert.Len(t, hashed, 16)
}

func TestHashIPIsStablePerSalt(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, s.hashIP("10.0.0.1"), s.hashIP("10.0.0.1"))
	assert.NotEqual(t, s.hashIP("10.0.0.1"), s.hashIP("10.0.0.2"))
}

func TestSubmissionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sub := Submission{ID: "sub-1", Name: "Jordan", Email: "j@example.com", Message: "hi"}
	require.NoError(t, s.RecordSubmission(ctx, sub))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Submissions)

	require.NoError(t, s.SetSubmissionStatus(ctx, "sub-1", "sent"))
	assert.Error(t, s.SetSubmissionStatus(ctx, "missing", "sent"))

	subs, err := s.RecentSubmissions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "sub-1", subs[0].ID)
	assert.Equal(t, "sent", subs[0].Status)
}

func TestRecentSubmissionsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, s.RecordSubmission(ctx, Submission{ID: "old", Name: "A", Email: "a@example.com", Message: "x", CreatedAt: older}))
	require.NoError(t, s.RecordSubmission(ctx, Submission{ID: "new", Name: "B", Email: "b@example.com", Message: "y"}))

	subs, err := s.RecentSubmissions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "new", subs[0].ID)
	assert.Equal(t, "queued", subs[0].Status)

	limited, err := s.RecentSubmissions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCleanupOld(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// one fresh visit and one well past retention
	require.NoError(t, s.Record(ctx, "203.0.113.1", "", "/"))
	old := time.Now().UTC().Add(-400 * 24 * time.Hour)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		s.hashIP("203.0.113.9"), "", "/old", old)
	require.NoError(t, err)

	n, err := s.CleanupOld(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.TotalVisits)
}
