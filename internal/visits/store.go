package visits

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Visit is a single privacy-scrubbed page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // salted hash, never the raw address
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Submission is a stored contact form submission.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // queued, sent, failed
	CreatedAt time.Time `json:"created_at"`
}

// Stats aggregates visitor and submission counts for the admin endpoint.
type Stats struct {
	TotalVisits       int64        `json:"total_visits"`
	UniqueVisitors    int64        `json:"unique_visitors"`
	VisitsToday       int64        `json:"visits_today"`
	VisitsThisWeek    int64        `json:"visits_this_week"`
	Submissions       int64        `json:"submissions"`
	RecentVisits      []Visit      `json:"recent_visits"`
	RecentSubmissions []Submission `json:"recent_submissions"`
}

// Store persists visits and contact submissions in SQLite.
type Store struct {
	db   *sql.DB
	salt string
}

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_visits_ts ON visits(ts);
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	message TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'queued',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (or creates) the store at path. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "data/portfolio.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("visits: open %s: %w", path, err)
	}
	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY under the async recording path.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("visits: init schema: %w", err)
	}
	salt := os.Getenv("PORTFOLIO_WEB_IP_SALT")
	if salt == "" {
		salt = randomSalt()
	}
	return &Store{db: db, salt: salt}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a page view with a salted hash of the client IP.
func (s *Store) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		s.hashIP(ip), userAgent, path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("visits: record: %w", err)
	}
	return nil
}

// RecordSubmission stores a contact form submission.
func (s *Store) RecordSubmission(ctx context.Context, sub Submission) error {
	if sub.Status == "" {
		sub.Status = "queued"
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, name, email, message, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Email, sub.Message, sub.Status, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("visits: record submission: %w", err)
	}
	return nil
}

// SetSubmissionStatus updates the delivery status of a stored submission.
func (s *Store) SetSubmissionStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("visits: set submission status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("visits: submission %s not found", id)
	}
	return nil
}

// Stats aggregates counters for the admin endpoint.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	now := time.Now().UTC()
	dayStart := now.Truncate(24 * time.Hour)
	weekStart := now.Add(-7 * 24 * time.Hour)

	queries := []struct {
		dst  *int64
		q    string
		args []any
	}{
		{&st.TotalVisits, `SELECT COUNT(*) FROM visits`, nil},
		{&st.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visits`, nil},
		{&st.VisitsToday, `SELECT COUNT(*) FROM visits WHERE ts >= ?`, []any{dayStart}},
		{&st.VisitsThisWeek, `SELECT COUNT(*) FROM visits WHERE ts >= ?`, []any{weekStart}},
		{&st.Submissions, `SELECT COUNT(*) FROM submissions`, nil},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.q, q.args...).Scan(q.dst); err != nil {
			return Stats{}, fmt.Errorf("visits: stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hashed_ip, user_agent, path, ts FROM visits ORDER BY ts DESC LIMIT 50`)
	if err != nil {
		return Stats{}, fmt.Errorf("visits: stats recent: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			log.Printf("visits: scan visit row: %v", err)
			continue
		}
		st.RecentVisits = append(st.RecentVisits, v)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	st.RecentSubmissions, err = s.RecentSubmissions(ctx, 20)
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// RecentSubmissions returns the newest stored contact submissions.
func (s *Store) RecentSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, message, status, created_at FROM submissions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("visits: recent submissions: %w", err)
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Message, &sub.Status, &sub.CreatedAt); err != nil {
			log.Printf("visits: scan submission row: %v", err)
			continue
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// CleanupOld removes visits older than the retention window.
func (s *Store) CleanupOld(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("visits: cleanup: %w", err)
	}
	return res.RowsAffected()
}

// hashIP produces a consistent, salted, truncated hash of the client address.
func (s *Store) hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(h[:])[:16]
}

func randomSalt() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "fallback-salt"
	}
	return hex.EncodeToString(b)
}
